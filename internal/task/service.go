package task

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"tasktracker/internal/cache"
	"tasktracker/internal/observability"
)

const cacheTimeout = 2 * time.Second

type TaskServiceInterface interface {
	List(owner string) ([]*Task, error)
	Add(owner, description, dueDate string) (*Task, error)
	Complete(owner string, id int) error
	Delete(owner string, id int) error
}

// TaskService fronts the repository with an optional per-owner list cache.
// Cache failures are logged and ignored: the store stays authoritative.
type TaskService struct {
	repo    TaskRepositoryInterface
	cache   *cache.TaskCache
	metrics *observability.Metrics
}

func NewTaskService(repo TaskRepositoryInterface, redisClient *redis.Client, metrics *observability.Metrics) TaskServiceInterface {
	return &TaskService{
		repo:    repo,
		cache:   cache.NewTaskCache(redisClient),
		metrics: metrics,
	}
}

func (s *TaskService) List(owner string) ([]*Task, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cacheTimeout)
	defer cancel()

	key := cache.OwnerTasksKey(owner)
	if cached, err := s.cache.Get(ctx, key); err == nil && cached != nil {
		var tasks []*Task
		if json.Unmarshal(cached, &tasks) == nil {
			logrus.WithField("owner", owner).Debug("Task list cache hit")
			s.countCache(true)
			return tasks, nil
		}
	}
	s.countCache(false)

	tasks, err := s.repo.List(owner)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, tasks); err != nil {
		logrus.WithError(err).Warn("Failed to cache task list")
	}

	return tasks, nil
}

func (s *TaskService) Add(owner, description, dueDate string) (*Task, error) {
	task, err := s.repo.Add(owner, description, dueDate)
	if err != nil {
		return nil, err
	}

	s.invalidate(owner)
	if s.metrics != nil {
		s.metrics.TasksCreatedTotal.Inc()
	}
	return task, nil
}

func (s *TaskService) Complete(owner string, id int) error {
	if err := s.repo.Complete(owner, id); err != nil {
		return err
	}

	s.invalidate(owner)
	if s.metrics != nil {
		s.metrics.TasksCompletedTotal.Inc()
	}
	return nil
}

func (s *TaskService) Delete(owner string, id int) error {
	if err := s.repo.Delete(owner, id); err != nil {
		return err
	}

	s.invalidate(owner)
	if s.metrics != nil {
		s.metrics.TasksDeletedTotal.Inc()
	}
	return nil
}

func (s *TaskService) invalidate(owner string) {
	ctx, cancel := context.WithTimeout(context.Background(), cacheTimeout)
	defer cancel()

	if err := s.cache.Invalidate(ctx, cache.OwnerTasksKey(owner)); err != nil {
		logrus.WithError(err).Warn("Failed to invalidate task list cache")
	}
}

func (s *TaskService) countCache(hit bool) {
	if s.metrics == nil || !s.cache.Enabled() {
		return
	}
	if hit {
		s.metrics.CacheHitsTotal.WithLabelValues("owner_tasks").Inc()
	} else {
		s.metrics.CacheMissesTotal.WithLabelValues("owner_tasks").Inc()
	}
}
