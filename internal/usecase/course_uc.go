package usecase

import (
	"context"
	"time"

	"learning-platform-api/internal/domain"
	"learning-platform-api/internal/domain/model"
	"learning-platform-api/internal/domain/ports/repository"

	"github.com/rs/zerolog"
)

var _ CourseUseCase = (*courseUC)(nil)

// CourseInput carries the writable course fields. Nil pointers on update
// mean "leave unchanged" so PATCH semantics fall out naturally.
type CourseInput struct {
	Name          *string
	Description   *string
	Preview       *string
	MaterialsLink *string
	Price         *int64
}

// CourseView is a course together with the per-caller bits the listing
// carries: lesson count, embedded lessons and the caller's subscription flag.
type CourseView struct {
	Course       *model.Course
	Lessons      []*model.Lesson
	LessonsCount int
	IsSubscribed bool
}

type CourseUseCase interface {
	Create(ctx context.Context, actor *model.User, in CourseInput) (*model.Course, error)
	Get(ctx context.Context, actor *model.User, id string) (*CourseView, error)
	List(ctx context.Context, actor *model.User) ([]*CourseView, error)
	Update(ctx context.Context, actor *model.User, id string, in CourseInput) (*model.Course, error)
	Delete(ctx context.Context, actor *model.User, id string) error
}

type courseUC struct {
	courses repository.CourseRepository
	lessons repository.LessonRepository
	subs    repository.SubscriptionRepository
	log     *zerolog.Logger
}

func NewCourseUseCase(courses repository.CourseRepository, lessons repository.LessonRepository, subs repository.SubscriptionRepository, log *zerolog.Logger) *courseUC {
	return &courseUC{courses: courses, lessons: lessons, subs: subs, log: log}
}

func (u *courseUC) Create(ctx context.Context, actor *model.User, in CourseInput) (*model.Course, error) {
	if err := Authorize(actor, ActionCreate, ""); err != nil {
		return nil, err
	}
	if in.Name == nil || *in.Name == "" {
		return nil, domain.ErrInvalidArgument
	}
	if in.MaterialsLink != nil {
		if err := model.ValidateLink("materials_link", *in.MaterialsLink); err != nil {
			return nil, err
		}
	}
	course, err := model.NewCourse(*in.Name, actor.ID)
	if err != nil {
		return nil, err
	}
	applyCourseInput(course, in)
	if err := u.courses.Save(ctx, nil, course); err != nil {
		return nil, err
	}
	u.log.Info().Str("course_id", course.ID).Str("owner_id", actor.ID).Msg("course created")
	return course, nil
}

func (u *courseUC) Get(ctx context.Context, actor *model.User, id string) (*CourseView, error) {
	if err := Authorize(actor, ActionRetrieve, ""); err != nil {
		return nil, err
	}
	course, err := u.courses.FindByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	// Out-of-scope rows read as absent, mirroring the scoped list.
	if !canViewObject(actor, course.OwnerID) {
		return nil, domain.ErrNotFound
	}
	return u.view(ctx, actor, course)
}

func (u *courseUC) List(ctx context.Context, actor *model.User) ([]*CourseView, error) {
	if err := Authorize(actor, ActionList, ""); err != nil {
		return nil, err
	}
	courses, err := u.courses.List(ctx, nil, listScope(actor))
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(courses))
	for _, c := range courses {
		ids = append(ids, c.ID)
	}
	counts := map[string]int{}
	if len(ids) > 0 {
		if counts, err = u.courses.CountLessons(ctx, nil, ids); err != nil {
			return nil, err
		}
	}
	subscribed, err := u.subscribedSet(ctx, actor)
	if err != nil {
		return nil, err
	}

	out := make([]*CourseView, 0, len(courses))
	for _, c := range courses {
		lessons, err := u.lessons.ListByCourse(ctx, nil, c.ID)
		if err != nil {
			return nil, err
		}
		_, isSub := subscribed[c.ID]
		out = append(out, &CourseView{
			Course:       c,
			Lessons:      lessons,
			LessonsCount: counts[c.ID],
			IsSubscribed: isSub,
		})
	}
	return out, nil
}

func (u *courseUC) Update(ctx context.Context, actor *model.User, id string, in CourseInput) (*model.Course, error) {
	course, err := u.courses.FindByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if err := Authorize(actor, ActionUpdate, course.OwnerID); err != nil {
		return nil, err
	}
	if in.MaterialsLink != nil {
		if err := model.ValidateLink("materials_link", *in.MaterialsLink); err != nil {
			return nil, err
		}
	}
	applyCourseInput(course, in)
	course.UpdatedAt = time.Now()
	if err := u.courses.Save(ctx, nil, course); err != nil {
		return nil, err
	}
	return course, nil
}

func (u *courseUC) Delete(ctx context.Context, actor *model.User, id string) error {
	course, err := u.courses.FindByID(ctx, nil, id)
	if err != nil {
		return err
	}
	if err := Authorize(actor, ActionDestroy, course.OwnerID); err != nil {
		return err
	}
	if err := u.courses.Delete(ctx, nil, id); err != nil {
		return err
	}
	u.log.Info().Str("course_id", id).Str("actor_id", actor.ID).Msg("course deleted")
	return nil
}

func (u *courseUC) view(ctx context.Context, actor *model.User, course *model.Course) (*CourseView, error) {
	lessons, err := u.lessons.ListByCourse(ctx, nil, course.ID)
	if err != nil {
		return nil, err
	}
	isSub, err := u.subs.Exists(ctx, nil, actor.ID, course.ID)
	if err != nil {
		return nil, err
	}
	return &CourseView{
		Course:       course,
		Lessons:      lessons,
		LessonsCount: len(lessons),
		IsSubscribed: isSub,
	}, nil
}

func (u *courseUC) subscribedSet(ctx context.Context, actor *model.User) (map[string]struct{}, error) {
	ids, err := u.subs.ListCourseIDsByUser(ctx, nil, actor.ID)
	if err != nil {
		return nil, err
	}
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}

func applyCourseInput(c *model.Course, in CourseInput) {
	if in.Name != nil {
		c.Name = *in.Name
	}
	if in.Description != nil {
		c.Description = *in.Description
	}
	if in.Preview != nil {
		c.Preview = *in.Preview
	}
	if in.MaterialsLink != nil {
		c.MaterialsLink = *in.MaterialsLink
	}
	if in.Price != nil {
		c.Price = in.Price
	}
}
