package service

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/tutoring_bot/internal/model"
	"go.uber.org/zap"
)

// TeacherService - чтение справочника учителей для интерфейсов
type TeacherService struct {
	directory TeacherDirectory
	logger    *zap.Logger
}

func NewTeacherService(directory TeacherDirectory, logger *zap.Logger) *TeacherService {
	return &TeacherService{
		directory: directory,
		logger:    logger,
	}
}

// ListTeachers возвращает всех учителей
func (s *TeacherService) ListTeachers(ctx context.Context) ([]*model.Teacher, error) {
	teachers, err := s.directory.ListTeachers(ctx)
	if err != nil {
		s.logger.Error("Failed to load teacher directory", zap.Error(err))
		return nil, fmt.Errorf("list teachers: %w", err)
	}
	return teachers, nil
}

// GetByName возвращает учителя по имени или ErrTeacherNotFound
func (s *TeacherService) GetByName(ctx context.Context, name string) (*model.Teacher, error) {
	teacher, err := s.directory.FindTeacherByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("find teacher: %w", err)
	}
	if teacher == nil {
		return nil, fmt.Errorf("%w: %s", ErrTeacherNotFound, name)
	}
	return teacher, nil
}

// GetByID возвращает учителя по ID или ErrTeacherNotFound
func (s *TeacherService) GetByID(ctx context.Context, id int64) (*model.Teacher, error) {
	teacher, err := s.directory.FindTeacherByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find teacher: %w", err)
	}
	if teacher == nil {
		return nil, fmt.Errorf("%w: id %d", ErrTeacherNotFound, id)
	}
	return teacher, nil
}
