package db_models

// StorageBlob is a single durable key holding an entire JSON document. The
// saved-itinerary list lives in one row and is read-modify-written whole on
// every change; concurrent writers race and the last write wins.
type StorageBlob struct {
	Key       string `gorm:"primaryKey;column:key"`
	Payload   string `gorm:"type:text"`
	UpdatedAt int64  `gorm:"autoUpdateTime"`
}

func (StorageBlob) TableName() string { return "storage_blobs" }
