package models

import "time"

// FullPaperFile represents the full_paper_files table. Created only for
// accepted abstracts by the owning author; re-uploads append, never replace.
type FullPaperFile struct {
	ID         uint       `gorm:"primaryKey;column:id" json:"id"`
	AbstractID uint       `gorm:"column:abstract_id" json:"abstract_id"`
	FileName   string     `gorm:"column:file_name" json:"file_name"`
	FileType   string     `gorm:"column:file_type" json:"file_type"`
	FilePath   string     `gorm:"column:file_path" json:"file_path"`
	UploadedBy uint       `gorm:"column:uploaded_by" json:"uploaded_by"`
	CreatedAt  time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"column:updated_at" json:"updated_at"`
	DeletedAt  *time.Time `gorm:"column:deleted_at" json:"deleted_at,omitempty"`
}

// TableName overrides the table name for FullPaperFile.
func (FullPaperFile) TableName() string {
	return "full_paper_files"
}
