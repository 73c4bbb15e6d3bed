package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"lessoncast/types"
)

// ErrNotFound is returned when a requested entity does not exist.
var ErrNotFound = errors.New("not found")

// Config configures the Redis connection backing the content store.
type Config struct {
	Addr     string // e.g. localhost:6379
	Password string
	DB       int
}

// Store persists course content in Redis: JSON documents under namespaced
// keys, with sorted sets holding chapter and section ordering.
type Store struct {
	rdb *redis.Client
}

// NewFromEnv creates a Store using REDIS_ADDR, REDIS_PASS and REDIS_DB.
func NewFromEnv() (*Store, error) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	db := 0
	if d := os.Getenv("REDIS_DB"); d != "" {
		if v, err := strconv.Atoi(d); err == nil {
			db = v
		}
	}
	return New(Config{Addr: addr, Password: os.Getenv("REDIS_PASS"), DB: db})
}

// New creates a Store and verifies connectivity.
func New(cfg Config) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}
	return &Store{rdb: client}, nil
}

// Client exposes the underlying connection for collaborators (sessions,
// preferences) that share the same Redis.
func (s *Store) Client() *redis.Client { return s.rdb }

func chapterKey(id string) string  { return "chapter:" + id }
func sectionKey(id string) string  { return "section:" + id }
func questionKey(id string) string { return "quizq:" + id }

const (
	chaptersIndex = "chapters:by-number"
)

func chapterSectionsKey(chapterID string) string  { return "chapter:" + chapterID + ":sections" }
func chapterQuestionsKey(chapterID string) string { return "chapter:" + chapterID + ":questions" }

func (s *Store) putJSON(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return s.rdb.Set(ctx, key, data, 0).Err()
}

func (s *Store) getJSON(ctx context.Context, key string, v any) error {
	data, err := s.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// PutChapter stores a chapter and indexes it by number.
func (s *Store) PutChapter(ctx context.Context, ch *types.Chapter) error {
	if err := s.putJSON(ctx, chapterKey(ch.ID), ch); err != nil {
		return err
	}
	return s.rdb.ZAdd(ctx, chaptersIndex, redis.Z{Score: float64(ch.Number), Member: ch.ID}).Err()
}

// GetChapter fetches one chapter by ID.
func (s *Store) GetChapter(ctx context.Context, id string) (*types.Chapter, error) {
	var ch types.Chapter
	if err := s.getJSON(ctx, chapterKey(id), &ch); err != nil {
		return nil, err
	}
	return &ch, nil
}

// GetChapterByNumber resolves a chapter by its course-facing number.
func (s *Store) GetChapterByNumber(ctx context.Context, number int) (*types.Chapter, error) {
	ids, err := s.rdb.ZRangeByScore(ctx, chaptersIndex, &redis.ZRangeBy{
		Min: strconv.Itoa(number), Max: strconv.Itoa(number),
	}).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, ErrNotFound
	}
	return s.GetChapter(ctx, ids[0])
}

// ListChapters returns all chapters ordered by number.
func (s *Store) ListChapters(ctx context.Context) ([]*types.Chapter, error) {
	ids, err := s.rdb.ZRange(ctx, chaptersIndex, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	chapters := make([]*types.Chapter, 0, len(ids))
	for _, id := range ids {
		ch, err := s.GetChapter(ctx, id)
		if err == ErrNotFound {
			continue
		}
		if err != nil {
			return nil, err
		}
		chapters = append(chapters, ch)
	}
	return chapters, nil
}

// DeleteChapter removes a chapter, its sections and its quiz questions.
func (s *Store) DeleteChapter(ctx context.Context, id string) error {
	sections, err := s.ListSections(ctx, id)
	if err != nil {
		return err
	}
	for _, sec := range sections {
		if err := s.DeleteSection(ctx, sec.ID); err != nil {
			return err
		}
	}
	questions, err := s.ListQuizQuestions(ctx, id)
	if err != nil {
		return err
	}
	for _, q := range questions {
		if err := s.DeleteQuizQuestion(ctx, q.ID); err != nil {
			return err
		}
	}
	if err := s.rdb.ZRem(ctx, chaptersIndex, id).Err(); err != nil {
		return err
	}
	return s.rdb.Del(ctx, chapterKey(id), chapterSectionsKey(id), chapterQuestionsKey(id)).Err()
}

// PutSection stores a section and indexes it under its chapter.
func (s *Store) PutSection(ctx context.Context, sec *types.Section) error {
	if err := s.putJSON(ctx, sectionKey(sec.ID), sec); err != nil {
		return err
	}
	return s.rdb.ZAdd(ctx, chapterSectionsKey(sec.ChapterID), redis.Z{
		Score: float64(sec.Order), Member: sec.ID,
	}).Err()
}

// GetSection fetches one section by ID.
func (s *Store) GetSection(ctx context.Context, id string) (*types.Section, error) {
	var sec types.Section
	if err := s.getJSON(ctx, sectionKey(id), &sec); err != nil {
		return nil, err
	}
	return &sec, nil
}

// ListSections returns a chapter's sections in order.
func (s *Store) ListSections(ctx context.Context, chapterID string) ([]*types.Section, error) {
	ids, err := s.rdb.ZRange(ctx, chapterSectionsKey(chapterID), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	sections := make([]*types.Section, 0, len(ids))
	for _, id := range ids {
		sec, err := s.GetSection(ctx, id)
		if err == ErrNotFound {
			continue
		}
		if err != nil {
			return nil, err
		}
		sections = append(sections, sec)
	}
	return sections, nil
}

// DeleteSection removes a section and its ordering entry.
func (s *Store) DeleteSection(ctx context.Context, id string) error {
	sec, err := s.GetSection(ctx, id)
	if err == ErrNotFound {
		return nil
	}
	if err != nil {
		return err
	}
	if err := s.rdb.ZRem(ctx, chapterSectionsKey(sec.ChapterID), id).Err(); err != nil {
		return err
	}
	return s.rdb.Del(ctx, sectionKey(id)).Err()
}

// PutQuizQuestion stores a quiz question and indexes it under its chapter.
func (s *Store) PutQuizQuestion(ctx context.Context, q *types.QuizQuestion) error {
	if err := s.putJSON(ctx, questionKey(q.ID), q); err != nil {
		return err
	}
	return s.rdb.ZAdd(ctx, chapterQuestionsKey(q.ChapterID), redis.Z{
		Score: float64(q.Order), Member: q.ID,
	}).Err()
}

// GetQuizQuestion fetches one quiz question by ID.
func (s *Store) GetQuizQuestion(ctx context.Context, id string) (*types.QuizQuestion, error) {
	var q types.QuizQuestion
	if err := s.getJSON(ctx, questionKey(id), &q); err != nil {
		return nil, err
	}
	return &q, nil
}

// ListQuizQuestions returns a chapter's quiz questions in order.
func (s *Store) ListQuizQuestions(ctx context.Context, chapterID string) ([]*types.QuizQuestion, error) {
	ids, err := s.rdb.ZRange(ctx, chapterQuestionsKey(chapterID), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	questions := make([]*types.QuizQuestion, 0, len(ids))
	for _, id := range ids {
		q, err := s.GetQuizQuestion(ctx, id)
		if err == ErrNotFound {
			continue
		}
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, nil
}

// DeleteQuizQuestion removes a quiz question and its ordering entry.
func (s *Store) DeleteQuizQuestion(ctx context.Context, id string) error {
	q, err := s.GetQuizQuestion(ctx, id)
	if err == ErrNotFound {
		return nil
	}
	if err != nil {
		return err
	}
	if err := s.rdb.ZRem(ctx, chapterQuestionsKey(q.ChapterID), id).Err(); err != nil {
		return err
	}
	return s.rdb.Del(ctx, questionKey(id)).Err()
}
