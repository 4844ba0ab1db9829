package service

import (
	"context"
	"errors"

	"examprep_backend/internal/model"
	"examprep_backend/internal/repository"
	"examprep_backend/internal/util"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

type LearnService struct {
	CardRepo     *repository.LearnCardRepository
	TopicRepo    *repository.TopicRepository
	ProgressRepo *repository.ProgressRepository
	Redis        *redis.Client
}

func NewLearnService(
	cardRepo *repository.LearnCardRepository,
	topicRepo *repository.TopicRepository,
	progressRepo *repository.ProgressRepository,
	rdb *redis.Client,
) *LearnService {
	return &LearnService{
		CardRepo:     cardRepo,
		TopicRepo:    topicRepo,
		ProgressRepo: progressRepo,
		Redis:        rdb,
	}
}

// CardWithStatus 学习卡片附当前用户的完成标记
type CardWithStatus struct {
	model.LearnCard
	Completed bool `json:"completed"`
}

func (s *LearnService) CardsForTopic(userID, topicID uint) ([]CardWithStatus, error) {
	if _, err := s.TopicRepo.FindByID(topicID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTopicNotFound
		}
		return nil, err
	}

	cards, err := s.CardRepo.FindByTopic(topicID)
	if err != nil {
		return nil, err
	}
	rows, err := s.ProgressRepo.FindLearnByTopic(userID, topicID)
	if err != nil {
		return nil, err
	}

	done := make(map[uint]bool, len(rows))
	for _, row := range rows {
		if row.Completed {
			done[row.LearnCardID] = true
		}
	}

	result := make([]CardWithStatus, 0, len(cards))
	for _, card := range cards {
		result = append(result, CardWithStatus{LearnCard: card, Completed: done[card.ID]})
	}
	return result, nil
}

// MarkCardComplete 幂等：重复提交同一张卡片不会报错也不会重复计数
func (s *LearnService) MarkCardComplete(ctx context.Context, userID, topicID, cardID uint) error {
	card, err := s.CardRepo.FindByID(cardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrCardNotFound
		}
		return err
	}
	if card.TopicID != topicID {
		return util.ErrCardNotFound
	}

	if err := s.ProgressRepo.MarkCardComplete(userID, card.ID, card.TopicID); err != nil {
		return err
	}
	invalidateOverviewCache(ctx, s.Redis, userID)
	return nil
}
