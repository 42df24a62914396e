package services_test

import (
	"sort"
	"sync"
	"time"

	"yuanfen_backend/internal/models"
	"yuanfen_backend/internal/repositories"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// In-memory repositories backing the service tests. They reproduce the
// contracts the gorm implementations promise: stable feed ordering, the
// unique (initiator, card) match index, and the (sent_at, seq) message order.

type fakeCardRepo struct {
	mu    sync.Mutex
	cards []*models.Card
}

func (f *fakeCardRepo) add(card *models.Card) *models.Card {
	f.mu.Lock()
	defer f.mu.Unlock()
	if card.ID == "" {
		card.ID = uuid.NewString()
	}
	if card.CreatedAt.IsZero() {
		card.CreatedAt = time.Now().Add(time.Duration(len(f.cards)) * time.Millisecond)
	}
	f.cards = append(f.cards, card)
	return card
}

func (f *fakeCardRepo) FindByID(id string) (*models.Card, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.cards {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, repositories.ErrCardNotFound
}

func (f *fakeCardRepo) FindFeed(scene models.Scene, ownerRole *models.Role, offset, limit int) ([]models.Card, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var matched []*models.Card
	for _, c := range f.cards {
		if c.Scene != scene {
			continue
		}
		if ownerRole != nil && c.OwnerRole != *ownerRole {
			continue
		}
		matched = append(matched, c)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.Before(matched[j].CreatedAt)
		}
		return matched[i].ID < matched[j].ID
	})

	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	page := make([]models.Card, 0, end-offset)
	for _, c := range matched[offset:end] {
		page = append(page, *c)
	}
	return page, total, nil
}

type fakeMatchRepo struct {
	mu      sync.Mutex
	matches []*models.Match

	// thread state consulted by ClearUnread, wired where chat is under test
	messages *fakeMessageRepo
}

func (f *fakeMatchRepo) FindByID(id string) (*models.Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.matches {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, repositories.ErrMatchNotFound
}

func (f *fakeMatchRepo) FindByPair(initiatorUserID, targetCardID string) (*models.Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.matches {
		if m.InitiatorUserID == initiatorUserID && m.TargetCardID == targetCardID {
			cp := *m
			return &cp, nil
		}
	}
	return nil, repositories.ErrMatchNotFound
}

func (f *fakeMatchRepo) CreateWithDetails(match *models.Match, details []models.MatchDetail) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.matches {
		if m.InitiatorUserID == match.InitiatorUserID && m.TargetCardID == match.TargetCardID {
			return repositories.ErrDuplicateMatch
		}
	}
	if match.ID == "" {
		match.ID = uuid.NewString()
	}
	if match.CreatedAt.IsZero() {
		match.CreatedAt = time.Now().Add(time.Duration(len(f.matches)) * time.Millisecond)
	}
	for i := range details {
		details[i].MatchID = match.ID
	}
	match.Details = details
	cp := *match
	f.matches = append(f.matches, &cp)
	return nil
}

func (f *fakeMatchRepo) ListByUser(userID string, status *models.MatchStatus, offset, limit int) ([]models.Match, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var matched []*models.Match
	for _, m := range f.matches {
		if !m.IsParticipant(userID) {
			continue
		}
		if status != nil && m.Status != *status {
			continue
		}
		matched = append(matched, m)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	page := make([]models.Match, 0, end-offset)
	for _, m := range matched[offset:end] {
		page = append(page, *m)
	}
	return page, total, nil
}

func (f *fakeMatchRepo) UpdateStatus(id string, status models.MatchStatus, isActive bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.matches {
		if m.ID == id {
			m.Status = status
			m.IsActive = isActive
			return nil
		}
	}
	return repositories.ErrMatchNotFound
}

func (f *fakeMatchRepo) SetInitiatorUnread(id string, unread bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.matches {
		if m.ID == id {
			m.InitiatorUnread = unread
			return nil
		}
	}
	return repositories.ErrMatchNotFound
}

func (f *fakeMatchRepo) SetTargetUnread(id string, unread bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.matches {
		if m.ID == id {
			m.TargetUnread = unread
			return nil
		}
	}
	return repositories.ErrMatchNotFound
}

func (f *fakeMatchRepo) ClearUnread(id, readerUserID string) error {
	if f.messages != nil {
		unread, err := f.messages.CountUnread(id, readerUserID)
		if err != nil {
			return err
		}
		if unread > 0 {
			return nil
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.matches {
		if m.ID != id {
			continue
		}
		if m.InitiatorUserID == readerUserID {
			m.InitiatorUnread = false
		}
		if m.TargetUserID == readerUserID {
			m.TargetUnread = false
		}
		return nil
	}
	return repositories.ErrMatchNotFound
}

type fakeMessageRepo struct {
	mu       sync.Mutex
	messages []*models.Message
	seq      int64
}

func (f *fakeMessageRepo) Append(msg *models.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.seq++
	msg.ID = uuid.NewString()
	msg.Seq = f.seq
	msg.IsRead = false

	sentAt := time.Now()
	for _, m := range f.messages {
		if m.MatchID == msg.MatchID && m.SentAt.After(sentAt) {
			sentAt = m.SentAt
		}
	}
	msg.SentAt = sentAt

	cp := *msg
	f.messages = append(f.messages, &cp)
	return nil
}

func (f *fakeMessageRepo) FindByID(id string) (*models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.messages {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, repositories.ErrMessageNotFound
}

func (f *fakeMessageRepo) ListByMatch(matchID string, offset, limit int) ([]models.Message, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var matched []*models.Message
	for _, m := range f.messages {
		if m.MatchID == matchID {
			matched = append(matched, m)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		if !matched[i].SentAt.Equal(matched[j].SentAt) {
			return matched[i].SentAt.After(matched[j].SentAt)
		}
		return matched[i].Seq > matched[j].Seq
	})

	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	page := make([]models.Message, 0, end-offset)
	for _, m := range matched[offset:end] {
		page = append(page, *m)
	}
	return page, total, nil
}

func (f *fakeMessageRepo) MarkReadUpTo(matchID, readerUserID string, upToSeq int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var updated int64
	for _, m := range f.messages {
		if m.MatchID != matchID || m.SenderUserID == readerUserID {
			continue
		}
		if m.Seq <= upToSeq && !m.IsRead {
			m.IsRead = true
			updated++
		}
	}
	return updated, nil
}

func (f *fakeMessageRepo) CountUnread(matchID, readerUserID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var count int64
	for _, m := range f.messages {
		if m.MatchID == matchID && m.SenderUserID != readerUserID && !m.IsRead {
			count++
		}
	}
	return count, nil
}

type actionKey struct {
	actor string
	card  string
}

type fakeActionRepo struct {
	mu      sync.Mutex
	records map[actionKey]*models.ActionRecord
	cards   *fakeCardRepo
}

func newFakeActionRepo(cards *fakeCardRepo) *fakeActionRepo {
	return &fakeActionRepo{
		records: make(map[actionKey]*models.ActionRecord),
		cards:   cards,
	}
}

func (f *fakeActionRepo) Upsert(rec *models.ActionRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *rec
	f.records[actionKey{rec.ActorUserID, rec.TargetCardID}] = &cp
	return nil
}

func (f *fakeActionRepo) FindByPair(actorUserID, targetCardID string) (*models.ActionRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if rec, ok := f.records[actionKey{actorUserID, targetCardID}]; ok {
		cp := *rec
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeActionRepo) HasReciprocalLike(actorUserID, ownerUserID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, rec := range f.records {
		if rec.ActorUserID != ownerUserID || !rec.Action.Positive() {
			continue
		}
		card, err := f.cards.FindByID(rec.TargetCardID)
		if err != nil {
			continue
		}
		if card.OwnerUserID != nil && *card.OwnerUserID == actorUserID {
			return true, nil
		}
	}
	return false, nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (f *fakeUserRepo) add(user *models.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[user.ID] = user
}

func (f *fakeUserRepo) FindByID(id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, repositories.ErrUserNotFound
}
