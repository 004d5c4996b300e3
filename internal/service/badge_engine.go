package service

import (
	"log"
	"time"

	"ezpoints/internal/domain"
	"ezpoints/internal/models"
	"ezpoints/internal/repository"
)

type badgeMilestone struct {
	threshold   int
	name        string
	description string
}

var activityMilestones = []badgeMilestone{
	{1, "はじめの一歩", "初回レシートアップロード"},
	{10, "レシート10枚達成", "10枚のレシートをアップロードしました"},
	{50, "レシート50枚達成", "50枚のレシートをアップロードしました"},
	{100, "レシート100枚達成", "100枚のレシートをアップロードしました"},
	{500, "レシートマスター", "500枚のレシートをアップロードしました"},
}

var consecutiveMilestones = []badgeMilestone{
	{3, "3日坊主卒業", "3日連続でレシートをアップロードしました"},
	{7, "一週間チャレンジャー", "7日連続でレシートをアップロードしました"},
	{30, "継続は力なり", "30日連続でレシートをアップロードしました"},
}

var amountMilestones = []badgeMilestone{
	{10000, "1万円突破", "累計1万円分のお買い物をしました"},
	{50000, "5万円突破", "累計5万円分のお買い物をしました"},
	{100000, "10万円突破", "累計10万円分のお買い物をしました"},
}

var singlePurchaseMilestones = []badgeMilestone{
	{5000, "高額お買い物", "一度に5000円以上のお買い物をしました"},
	{10000, "大人買い", "一度に1万円以上のお買い物をしました"},
}

var badgeIconURLs = map[string]string{
	domain.CriteriaReceiptCount:    "https://cdn-icons-png.flaticon.com/512/1828/1828506.png",
	domain.CriteriaConsecutiveDays: "https://cdn-icons-png.flaticon.com/512/1827/1827369.png",
	domain.CriteriaTotalAmount:     "https://cdn-icons-png.flaticon.com/512/1827/1827422.png",
	domain.CriteriaSinglePurchase:  "https://cdn-icons-png.flaticon.com/512/1828/1828884.png",
}

func badgeIconURL(kind string) string {
	if url, ok := badgeIconURLs[kind]; ok {
		return url
	}
	return "https://cdn-icons-png.flaticon.com/512/1827/1827380.png"
}

// BadgeEngine scans a user's cumulative receipt history and awards any
// newly qualified milestone badges. Catalog entries are created on demand
// and shared across users.
type BadgeEngine struct {
	receipts         *repository.ReceiptRepository
	badges           *repository.BadgeRepository
	profiles         *repository.ProfileRepository
	streakWindowDays int
}

func NewBadgeEngine(receipts *repository.ReceiptRepository, badges *repository.BadgeRepository, profiles *repository.ProfileRepository, streakWindowDays int) *BadgeEngine {
	return &BadgeEngine{receipts: receipts, badges: badges, profiles: profiles, streakWindowDays: streakWindowDays}
}

// EvaluateAndAward runs all four badge categories and returns only badges
// newly granted in this call. A failure in one category or one badge never
// blocks the others. Calling it again with no new receipts awards nothing.
func (e *BadgeEngine) EvaluateAndAward(userID uint) ([]BadgeAward, error) {
	profile, err := e.profiles.GetOrCreate(userID)
	if err != nil {
		return nil, err
	}
	held, err := e.badges.HeldBadgeIDs(profile.ID)
	if err != nil {
		return nil, err
	}

	var awarded []BadgeAward
	awarded = append(awarded, e.evaluateActivity(userID, profile.ID, held)...)
	awarded = append(awarded, e.evaluateConsecutive(userID, profile.ID, held)...)
	awarded = append(awarded, e.evaluateAmounts(userID, profile.ID, held)...)
	return awarded, nil
}

func (e *BadgeEngine) evaluateActivity(userID, profileID uint, held map[uint]struct{}) []BadgeAward {
	total, err := e.receipts.CountByUser(userID)
	if err != nil {
		log.Printf("[badges] receipt count failed for user %d: %v", userID, err)
		return nil
	}
	return e.awardMilestones(profileID, held, domain.CriteriaReceiptCount, int(total), activityMilestones)
}

func (e *BadgeEngine) evaluateConsecutive(userID, profileID uint, held map[uint]struct{}) []BadgeAward {
	since := time.Now().AddDate(0, 0, -e.streakWindowDays)
	recent, err := e.receipts.ListCreatedSince(userID, since)
	if err != nil {
		log.Printf("[badges] streak lookup failed for user %d: %v", userID, err)
		return nil
	}
	times := make([]time.Time, len(recent))
	for i, r := range recent {
		times[i] = r.CreatedAt
	}
	return e.awardMilestones(profileID, held, domain.CriteriaConsecutiveDays, ConsecutiveDays(times), consecutiveMilestones)
}

func (e *BadgeEngine) evaluateAmounts(userID, profileID uint, held map[uint]struct{}) []BadgeAward {
	var awarded []BadgeAward

	total, err := e.receipts.SumAmountByUser(userID)
	if err != nil {
		log.Printf("[badges] amount sum failed for user %d: %v", userID, err)
	} else {
		awarded = append(awarded, e.awardMilestones(profileID, held, domain.CriteriaTotalAmount, int(total), amountMilestones)...)
	}

	max, err := e.receipts.MaxAmountByUser(userID)
	if err != nil {
		log.Printf("[badges] amount max failed for user %d: %v", userID, err)
	} else {
		awarded = append(awarded, e.awardMilestones(profileID, held, domain.CriteriaSinglePurchase, int(max), singlePurchaseMilestones)...)
	}
	return awarded
}

// awardMilestones grants every milestone the value meets that the profile
// does not already hold. Failures are isolated per badge.
func (e *BadgeEngine) awardMilestones(profileID uint, held map[uint]struct{}, kind string, value int, milestones []badgeMilestone) []BadgeAward {
	var awarded []BadgeAward
	for _, m := range milestones {
		if value < m.threshold {
			continue
		}
		badge, err := e.badges.EnsureBadge(&models.Badge{
			Name:               m.name,
			Description:        m.description,
			IconURL:            badgeIconURL(kind),
			CriteriaKind:       kind,
			CriteriaComparator: ">=",
			CriteriaThreshold:  m.threshold,
			IsActive:           true,
		})
		if err != nil {
			log.Printf("[badges] ensure %q failed: %v", m.name, err)
			continue
		}
		if _, ok := held[badge.ID]; ok {
			continue
		}
		isNew, err := e.badges.Award(profileID, badge.ID)
		if err != nil {
			log.Printf("[badges] award %q to profile %d failed: %v", m.name, profileID, err)
			continue
		}
		if isNew {
			held[badge.ID] = struct{}{}
			awarded = append(awarded, BadgeAward{BadgeID: badge.ID, BadgeName: badge.Name, IsNew: true})
		}
	}
	return awarded
}
