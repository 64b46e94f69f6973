package repository

import (
	"encoding/json"

	"github.com/jianshanacademy/camp-portal/internal/domain/applicant"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ApplicationRepo interface {
	GetByID(id uint) (applicant.Application, error)
	GetByUserID(userID uint) (applicant.Application, error)
	Create(app *applicant.Application) error
	Save(app *applicant.Application) error
	UpdateFields(id uint, fields map[string]any) error
	AppendNote(id uint, note applicant.Note) error
	Delete(id uint) error
	ListAll() ([]applicant.Application, error)
	CountByStatus() (applicant.StatsDTO, error)
	WithTx(tx *gorm.DB) ApplicationRepo
}

type DBApplicationRepo struct {
	db *gorm.DB
}

func NewApplicationRepo(db *gorm.DB) *DBApplicationRepo {
	return &DBApplicationRepo{
		db: db,
	}
}

func (r *DBApplicationRepo) GetByID(id uint) (applicant.Application, error) {
	var app applicant.Application
	if err := r.db.First(&app, id).Error; err != nil {
		return app, err
	}
	return app, nil
}

func (r *DBApplicationRepo) GetByUserID(userID uint) (applicant.Application, error) {
	var app applicant.Application
	if err := r.db.Where("user_id = ?", userID).First(&app).Error; err != nil {
		return app, err
	}
	return app, nil
}

func (r *DBApplicationRepo) Create(app *applicant.Application) error {
	return r.db.Create(app).Error
}

func (r *DBApplicationRepo) Save(app *applicant.Application) error {
	return r.db.Save(app).Error
}

// UpdateFields writes only the given columns so concurrently unmodified
// fields are not clobbered. update_at is refreshed by gorm.
func (r *DBApplicationRepo) UpdateFields(id uint, fields map[string]any) error {
	return r.db.Model(&applicant.Application{}).Where("a_id = ?", id).Updates(fields).Error
}

// AppendNote appends at the store level so two admins writing notes at
// the same time cannot overwrite each other.
func (r *DBApplicationRepo) AppendNote(id uint, note applicant.Note) error {
	raw, err := json.Marshal([]applicant.Note{note})
	if err != nil {
		return err
	}
	return r.db.Model(&applicant.Application{}).
		Where("a_id = ?", id).
		Update("notes", gorm.Expr("COALESCE(notes, '[]'::jsonb) || ?::jsonb", datatypes.JSON(raw))).
		Error
}

func (r *DBApplicationRepo) Delete(id uint) error {
	return r.db.Delete(&applicant.Application{}, id).Error
}

func (r *DBApplicationRepo) ListAll() ([]applicant.Application, error) {
	var apps []applicant.Application
	err := r.db.Order("create_at desc").Find(&apps).Error
	return apps, err
}

func (r *DBApplicationRepo) CountByStatus() (applicant.StatsDTO, error) {
	var rows []struct {
		Status applicant.Status
		Count  int64
	}
	var stats applicant.StatsDTO

	err := r.db.Model(&applicant.Application{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return stats, err
	}

	for _, row := range rows {
		stats.Total += row.Count
		switch row.Status {
		case applicant.StatusDraft:
			stats.Draft = row.Count
		case applicant.StatusSubmitted:
			stats.Submitted = row.Count
		case applicant.StatusUnderReview:
			stats.UnderReview = row.Count
		case applicant.StatusAccepted:
			stats.Accepted = row.Count
		case applicant.StatusRejected:
			stats.Rejected = row.Count
		case applicant.StatusWaitlisted:
			stats.Waitlisted = row.Count
		case applicant.StatusEnrolled:
			stats.Enrolled = row.Count
		}
	}
	return stats, nil
}

func (r *DBApplicationRepo) WithTx(tx *gorm.DB) ApplicationRepo {
	if tx == nil {
		return r
	}
	return &DBApplicationRepo{
		db: tx,
	}
}
