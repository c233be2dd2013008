package usecase

import (
	"context"
	"time"

	"learning-platform-api/internal/domain"
	"learning-platform-api/internal/domain/model"
	"learning-platform-api/internal/domain/ports/repository"

	"github.com/rs/zerolog"
)

var _ LessonUseCase = (*lessonUC)(nil)

type LessonInput struct {
	Name          *string
	CourseID      *string
	Description   *string
	Preview       *string
	VideoLink     *string
	MaterialsLink *string
}

type LessonUseCase interface {
	Create(ctx context.Context, actor *model.User, in LessonInput) (*model.Lesson, error)
	Get(ctx context.Context, actor *model.User, id string) (*model.Lesson, error)
	List(ctx context.Context, actor *model.User) ([]*model.Lesson, error)
	Update(ctx context.Context, actor *model.User, id string, in LessonInput) (*model.Lesson, error)
	Delete(ctx context.Context, actor *model.User, id string) error
}

type lessonUC struct {
	lessons repository.LessonRepository
	courses repository.CourseRepository
	tm      repository.TransactionManager
	log     *zerolog.Logger
}

func NewLessonUseCase(lessons repository.LessonRepository, courses repository.CourseRepository, tm repository.TransactionManager, log *zerolog.Logger) *lessonUC {
	return &lessonUC{lessons: lessons, courses: courses, tm: tm, log: log}
}

func (u *lessonUC) Create(ctx context.Context, actor *model.User, in LessonInput) (*model.Lesson, error) {
	if err := Authorize(actor, ActionCreate, ""); err != nil {
		return nil, err
	}
	if in.Name == nil || *in.Name == "" || in.CourseID == nil || *in.CourseID == "" {
		return nil, domain.ErrInvalidArgument
	}
	if err := validateLessonLinks(in); err != nil {
		return nil, err
	}
	lesson, err := model.NewLesson(*in.Name, *in.CourseID, actor.ID)
	if err != nil {
		return nil, err
	}
	applyLessonInput(lesson, in)
	// The existence check and the insert share a transaction so a course
	// deleted in between cannot leave a dangling lesson.
	err = u.tm.WithTx(ctx, func(ctx context.Context, tx repository.Tx) error {
		if _, err := u.courses.FindByID(ctx, tx, lesson.CourseID); err != nil {
			return err
		}
		return u.lessons.Save(ctx, tx, lesson)
	})
	if err != nil {
		return nil, err
	}
	u.log.Info().Str("lesson_id", lesson.ID).Str("course_id", lesson.CourseID).Msg("lesson created")
	return lesson, nil
}

func (u *lessonUC) Get(ctx context.Context, actor *model.User, id string) (*model.Lesson, error) {
	if err := Authorize(actor, ActionRetrieve, ""); err != nil {
		return nil, err
	}
	lesson, err := u.lessons.FindByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if !canViewObject(actor, lesson.OwnerID) {
		return nil, domain.ErrNotFound
	}
	return lesson, nil
}

func (u *lessonUC) List(ctx context.Context, actor *model.User) ([]*model.Lesson, error) {
	if err := Authorize(actor, ActionList, ""); err != nil {
		return nil, err
	}
	return u.lessons.List(ctx, nil, listScope(actor))
}

func (u *lessonUC) Update(ctx context.Context, actor *model.User, id string, in LessonInput) (*model.Lesson, error) {
	lesson, err := u.lessons.FindByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if err := Authorize(actor, ActionUpdate, lesson.OwnerID); err != nil {
		return nil, err
	}
	if err := validateLessonLinks(in); err != nil {
		return nil, err
	}
	moved := in.CourseID != nil && *in.CourseID != lesson.CourseID
	applyLessonInput(lesson, in)
	lesson.UpdatedAt = time.Now()
	err = u.tm.WithTx(ctx, func(ctx context.Context, tx repository.Tx) error {
		if moved {
			if _, err := u.courses.FindByID(ctx, tx, lesson.CourseID); err != nil {
				return err
			}
		}
		return u.lessons.Save(ctx, tx, lesson)
	})
	if err != nil {
		return nil, err
	}
	return lesson, nil
}

func (u *lessonUC) Delete(ctx context.Context, actor *model.User, id string) error {
	lesson, err := u.lessons.FindByID(ctx, nil, id)
	if err != nil {
		return err
	}
	if err := Authorize(actor, ActionDestroy, lesson.OwnerID); err != nil {
		return err
	}
	if err := u.lessons.Delete(ctx, nil, id); err != nil {
		return err
	}
	u.log.Info().Str("lesson_id", id).Str("actor_id", actor.ID).Msg("lesson deleted")
	return nil
}

func validateLessonLinks(in LessonInput) error {
	if in.VideoLink != nil {
		if err := model.ValidateLink("video_link", *in.VideoLink); err != nil {
			return err
		}
	}
	if in.MaterialsLink != nil {
		if err := model.ValidateLink("materials_link", *in.MaterialsLink); err != nil {
			return err
		}
	}
	return nil
}

func applyLessonInput(l *model.Lesson, in LessonInput) {
	if in.Name != nil {
		l.Name = *in.Name
	}
	if in.CourseID != nil {
		l.CourseID = *in.CourseID
	}
	if in.Description != nil {
		l.Description = *in.Description
	}
	if in.Preview != nil {
		l.Preview = *in.Preview
	}
	if in.VideoLink != nil {
		l.VideoLink = *in.VideoLink
	}
	if in.MaterialsLink != nil {
		l.MaterialsLink = *in.MaterialsLink
	}
}
