package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"voyago/internal/models/request_models"
	"voyago/internal/models/response_models"
	"voyago/internal/services"
	"voyago/pkg/utils"
)

type PlannerController struct {
	sessionService    services.SessionServiceInterface
	generationService services.GenerationServiceInterface
	savedService      services.SavedServiceInterface
}

func NewPlannerController(
	sessionService services.SessionServiceInterface,
	generationService services.GenerationServiceInterface,
	savedService services.SavedServiceInterface,
) *PlannerController {
	return &PlannerController{
		sessionService:    sessionService,
		generationService: generationService,
		savedService:      savedService,
	}
}

func (p *PlannerController) StartSessionHandler(c *gin.Context) {
	state, err := p.sessionService.Start(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, state, "Planner session started")
}

func (p *PlannerController) GetSessionHandler(c *gin.Context) {
	state, err := p.sessionService.GetState(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, state, "")
}

func (p *PlannerController) SubmitAnswerHandler(c *gin.Context) {
	var req request_models.AnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.QuestionID == "" {
		utils.RespondError(c, http.StatusBadRequest, "question_id and op are required")
		return
	}
	state, err := p.sessionService.SubmitAnswer(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, state, "Answer accepted")
}

func (p *PlannerController) NextHandler(c *gin.Context) {
	state, err := p.sessionService.Next(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, state, "")
}

func (p *PlannerController) SkipHandler(c *gin.Context) {
	state, err := p.sessionService.Skip(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, state, "")
}

func (p *PlannerController) PrevHandler(c *gin.Context) {
	state, err := p.sessionService.Prev(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, state, "")
}

func (p *PlannerController) JumpHandler(c *gin.Context) {
	var req request_models.JumpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "step is required")
		return
	}
	state, err := p.sessionService.JumpTo(c.Request.Context(), c.Param("id"), req.Step)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, state, "")
}

func (p *PlannerController) ResetHandler(c *gin.Context) {
	state, err := p.sessionService.Reset(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, state, "Planner session reset")
}

func (p *PlannerController) GenerateHandler(c *gin.Context) {
	sessionID := c.Param("id")
	markdown, err := p.generationService.Generate(c.Request.Context(), sessionID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, response_models.GenerationResult{
		SessionID: sessionID,
		Markdown:  markdown,
	}, "Itinerary generated")
}

func (p *PlannerController) SaveHandler(c *gin.Context) {
	var req request_models.SaveItineraryRequest
	_ = c.ShouldBindJSON(&req)

	item, err := p.savedService.SaveCurrent(c.Request.Context(), c.Param("id"), req.Name)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, item, "Itinerary saved")
}

func (p *PlannerController) LoadSavedHandler(c *gin.Context) {
	state, err := p.savedService.LoadIntoSession(c.Request.Context(), c.Param("id"), c.Param("savedId"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, state, "Itinerary loaded")
}
