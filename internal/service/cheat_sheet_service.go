package service

import (
	"errors"

	"examprep_backend/internal/model"
	"examprep_backend/internal/repository"
	"examprep_backend/internal/util"

	"gorm.io/gorm"
)

type CheatSheetService struct {
	EntryRepo *repository.CheatSheetRepository
	CardRepo  *repository.LearnCardRepository
	TopicRepo *repository.TopicRepository
}

func NewCheatSheetService(
	entryRepo *repository.CheatSheetRepository,
	cardRepo *repository.LearnCardRepository,
	topicRepo *repository.TopicRepository,
) *CheatSheetService {
	return &CheatSheetService{
		EntryRepo: entryRepo,
		CardRepo:  cardRepo,
		TopicRepo: topicRepo,
	}
}

// PresetFormula 从学习卡片提取的预设公式，只读
type PresetFormula struct {
	TopicID uint   `json:"topicId"`
	Label   string `json:"label"`
	Formula string `json:"formula"`
}

// CheatSheet 用户速查表：预设公式 + 用户自己收藏的条目
type CheatSheet struct {
	Presets []PresetFormula         `json:"presets"`
	Entries []model.CheatSheetEntry `json:"entries"`
}

// ForUser topicID 为 0 时返回全部主题的速查表
func (s *CheatSheetService) ForUser(userID, topicID uint) (*CheatSheet, error) {
	if topicID != 0 {
		if _, err := s.TopicRepo.FindByID(topicID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, util.ErrTopicNotFound
			}
			return nil, err
		}
	}

	cards, err := s.CardRepo.FindPresetFormulas(topicID)
	if err != nil {
		return nil, err
	}
	entries, err := s.EntryRepo.FindByUser(userID, topicID)
	if err != nil {
		return nil, err
	}

	presets := make([]PresetFormula, 0, len(cards))
	for _, card := range cards {
		presets = append(presets, PresetFormula{
			TopicID: card.TopicID,
			Label:   card.Title,
			Formula: card.Formula,
		})
	}
	if entries == nil {
		entries = []model.CheatSheetEntry{}
	}
	return &CheatSheet{Presets: presets, Entries: entries}, nil
}

func (s *CheatSheetService) AddEntry(entry *model.CheatSheetEntry) error {
	if _, err := s.TopicRepo.FindByID(entry.TopicID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrTopicNotFound
		}
		return err
	}
	return s.EntryRepo.Create(entry)
}

// RemoveEntry 只允许删除自己的条目，删别人的返回 404 不暴露存在性
func (s *CheatSheetService) RemoveEntry(id, userID uint) error {
	hit, err := s.EntryRepo.Delete(id, userID)
	if err != nil {
		return err
	}
	if !hit {
		return util.ErrEntryNotFound
	}
	return nil
}
