package repository

import (
	"context"
	"fmt"
	"os"

	"github.com/Freeeeeet/tutoring_bot/internal/model"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type availabilityDocument struct {
	Day       string `json:"day"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// Обязательны только поля, по которым учителя ищут. Кривое окно или почта
// пропускаются с предупреждением и не ломают весь справочник.
type teacherDocument struct {
	ID           int64                  `json:"id" validate:"gte=0"`
	Name         string                 `json:"name" validate:"required"`
	Subject      string                 `json:"subject"`
	Email        string                 `json:"email"`
	Availability []availabilityDocument `json:"availability"`
}

// TeacherDirectory - справочник учителей из JSON-файла.
// Файл перечитывается при каждом обращении, поэтому правки подхватываются без перезапуска.
type TeacherDirectory struct {
	path     string
	validate *validator.Validate
	logger   *zap.Logger
}

func NewTeacherDirectory(path string, logger *zap.Logger) *TeacherDirectory {
	return &TeacherDirectory{
		path:     path,
		validate: validator.New(),
		logger:   logger,
	}
}

// ListTeachers возвращает всех учителей в порядке документа
func (d *TeacherDirectory) ListTeachers(ctx context.Context) ([]*model.Teacher, error) {
	return d.load(ctx)
}

// FindTeacherByName ищет учителя по точному имени, nil если не найден
func (d *TeacherDirectory) FindTeacherByName(ctx context.Context, name string) (*model.Teacher, error) {
	teachers, err := d.load(ctx)
	if err != nil {
		return nil, err
	}
	for _, t := range teachers {
		if t.Name == name {
			return t, nil
		}
	}
	return nil, nil
}

// FindTeacherByID ищет учителя по ID, nil если не найден
func (d *TeacherDirectory) FindTeacherByID(ctx context.Context, id int64) (*model.Teacher, error) {
	teachers, err := d.load(ctx)
	if err != nil {
		return nil, err
	}
	for _, t := range teachers {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, nil
}

func (d *TeacherDirectory) load(ctx context.Context) ([]*model.Teacher, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(d.path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrDirectoryUnavailable, d.path, err)
	}

	var docs []teacherDocument
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrDirectoryUnavailable, d.path, err)
	}

	teachers := make([]*model.Teacher, 0, len(docs))
	for i := range docs {
		doc := &docs[i]
		if err := d.validate.Struct(doc); err != nil {
			return nil, fmt.Errorf("%w: teacher #%d: %v", ErrDirectoryUnavailable, i, err)
		}

		teacher := &model.Teacher{
			ID:      doc.ID,
			Name:    doc.Name,
			Subject: doc.Subject,
		}
		if doc.Email != "" {
			if err := d.validate.Var(doc.Email, "email"); err != nil {
				d.logger.Warn("Ignoring invalid teacher email",
					zap.String("teacher", doc.Name),
					zap.String("email", doc.Email),
				)
			} else {
				teacher.Email = doc.Email
			}
		}
		for _, a := range doc.Availability {
			day, err := model.ParseWeekday(a.Day)
			if err != nil {
				d.logger.Warn("Skipping availability with unknown day",
					zap.String("teacher", doc.Name),
					zap.String("day", a.Day),
				)
				continue
			}
			if !validWindow(a) {
				d.logger.Warn("Skipping availability with invalid time",
					zap.String("teacher", doc.Name),
					zap.String("day", a.Day),
					zap.String("start", a.StartTime),
					zap.String("end", a.EndTime),
				)
				continue
			}
			teacher.Availability = append(teacher.Availability, model.Availability{
				Day:       day,
				StartTime: a.StartTime,
				EndTime:   a.EndTime,
			})
		}
		teachers = append(teachers, teacher)
	}

	return teachers, nil
}

func validWindow(a availabilityDocument) bool {
	if _, err := model.ParseClock(a.StartTime); err != nil {
		return false
	}
	_, err := model.ParseClock(a.EndTime)
	return err == nil
}
