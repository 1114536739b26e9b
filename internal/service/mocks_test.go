package service

import (
	"context"
	"sort"
	"time"

	"github.com/pulso-rh/pulso/internal/domain"
)

// =============================================================================
// MockUserRepository
// =============================================================================

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	users     map[int64]*domain.User
	nextID    int64
	createErr error
	getErr    error
	countErr  error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users:  make(map[int64]*domain.User),
		nextID: 1,
	}
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	for _, u := range m.users {
		if u.Email == user.Email {
			return domain.ErrEmailInUse
		}
	}
	user.ID = m.nextID
	m.nextID++
	m.users[user.ID] = user
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) GetActiveWithSector(ctx context.Context, id int64) (*domain.User, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	u, ok := m.users[id]
	if !ok || !u.Active || u.Sector == nil || !u.Sector.Active {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (m *MockUserRepository) GetActiveByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	for _, u := range m.users {
		if u.Email == email && u.Active && u.Sector != nil && u.Sector.Active {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.getErr != nil {
		return false, m.getErr
	}
	for _, u := range m.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockUserRepository) CountActiveBySector(ctx context.Context, sectorID int64) (int64, error) {
	if m.countErr != nil {
		return 0, m.countErr
	}
	var count int64
	for _, u := range m.users {
		if u.SectorID == sectorID && u.Active {
			count++
		}
	}
	return count, nil
}

// =============================================================================
// MockSectorRepository
// =============================================================================

// MockSectorRepository is a mock implementation of repository.SectorRepository.
type MockSectorRepository struct {
	sectors   map[int64]*domain.Sector
	nextID    int64
	createErr error
	getErr    error
	updateErr error
}

func NewMockSectorRepository() *MockSectorRepository {
	return &MockSectorRepository{
		sectors: make(map[int64]*domain.Sector),
		nextID:  1,
	}
}

func (m *MockSectorRepository) Create(ctx context.Context, sector *domain.Sector) error {
	if m.createErr != nil {
		return m.createErr
	}
	for _, s := range m.sectors {
		if s.Name == sector.Name {
			return domain.ErrSectorNameInUse
		}
	}
	sector.ID = m.nextID
	m.nextID++
	m.sectors[sector.ID] = sector
	return nil
}

func (m *MockSectorRepository) GetByID(ctx context.Context, id int64) (*domain.Sector, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if s, ok := m.sectors[id]; ok {
		return s, nil
	}
	return nil, domain.ErrSectorNotFound
}

func (m *MockSectorRepository) GetActiveByID(ctx context.Context, id int64) (*domain.Sector, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	s, ok := m.sectors[id]
	if !ok || !s.Active {
		return nil, domain.ErrSectorNotFound
	}
	return s, nil
}

func (m *MockSectorRepository) ListActive(ctx context.Context) ([]*domain.Sector, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	result := make([]*domain.Sector, 0)
	for _, s := range m.sectors {
		if s.Active {
			result = append(result, s)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *MockSectorRepository) Update(ctx context.Context, sector *domain.Sector) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	if _, ok := m.sectors[sector.ID]; !ok {
		return domain.ErrSectorNotFound
	}
	for _, s := range m.sectors {
		if s.ID != sector.ID && s.Name == sector.Name {
			return domain.ErrSectorNameInUse
		}
	}
	m.sectors[sector.ID] = sector
	return nil
}

// =============================================================================
// MockCollaboratorRepository
// =============================================================================

// MockCollaboratorRepository is a mock implementation of repository.CollaboratorRepository.
type MockCollaboratorRepository struct {
	collaborators map[int64]*domain.Collaborator
	nextID        int64
	createErr     error
	getErr        error
}

func NewMockCollaboratorRepository() *MockCollaboratorRepository {
	return &MockCollaboratorRepository{
		collaborators: make(map[int64]*domain.Collaborator),
		nextID:        1,
	}
}

func (m *MockCollaboratorRepository) Create(ctx context.Context, c *domain.Collaborator) error {
	if m.createErr != nil {
		return m.createErr
	}
	for _, existing := range m.collaborators {
		if existing.IdentificationNumber == c.IdentificationNumber || existing.Email == c.Email {
			return domain.ErrCollaboratorExists
		}
	}
	c.ID = m.nextID
	m.nextID++
	m.collaborators[c.ID] = c
	return nil
}

func (m *MockCollaboratorRepository) GetByID(ctx context.Context, id int64) (*domain.Collaborator, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if c, ok := m.collaborators[id]; ok {
		return c, nil
	}
	return nil, domain.ErrCollaboratorNotFound
}

func (m *MockCollaboratorRepository) List(ctx context.Context) ([]*domain.Collaborator, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	result := make([]*domain.Collaborator, 0, len(m.collaborators))
	for _, c := range m.collaborators {
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].FullName < result[j].FullName })
	return result, nil
}

func (m *MockCollaboratorRepository) Update(ctx context.Context, c *domain.Collaborator) error {
	if _, ok := m.collaborators[c.ID]; !ok {
		return domain.ErrCollaboratorNotFound
	}
	m.collaborators[c.ID] = c
	return nil
}

func (m *MockCollaboratorRepository) Delete(ctx context.Context, id int64) error {
	if _, ok := m.collaborators[id]; !ok {
		return domain.ErrCollaboratorNotFound
	}
	delete(m.collaborators, id)
	return nil
}

func (m *MockCollaboratorRepository) Count(ctx context.Context) (int64, error) {
	return int64(len(m.collaborators)), nil
}

// =============================================================================
// MockFeedbackRepository
// =============================================================================

// MockFeedbackRepository is a mock implementation of repository.FeedbackRepository.
type MockFeedbackRepository struct {
	feedbacks map[int64]*domain.Feedback
	nextID    int64
	createErr error
	getErr    error
}

func NewMockFeedbackRepository() *MockFeedbackRepository {
	return &MockFeedbackRepository{
		feedbacks: make(map[int64]*domain.Feedback),
		nextID:    1,
	}
}

func (m *MockFeedbackRepository) Create(ctx context.Context, f *domain.Feedback) error {
	if m.createErr != nil {
		return m.createErr
	}
	f.ID = m.nextID
	m.nextID++
	m.feedbacks[f.ID] = f
	return nil
}

func (m *MockFeedbackRepository) GetByID(ctx context.Context, id int64) (*domain.Feedback, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if f, ok := m.feedbacks[id]; ok {
		return f, nil
	}
	return nil, domain.ErrFeedbackNotFound
}

func (m *MockFeedbackRepository) List(ctx context.Context) ([]*domain.Feedback, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	result := make([]*domain.Feedback, 0, len(m.feedbacks))
	for _, f := range m.feedbacks {
		result = append(result, f)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (m *MockFeedbackRepository) Update(ctx context.Context, f *domain.Feedback) error {
	if _, ok := m.feedbacks[f.ID]; !ok {
		return domain.ErrFeedbackNotFound
	}
	m.feedbacks[f.ID] = f
	return nil
}

func (m *MockFeedbackRepository) Delete(ctx context.Context, id int64) error {
	if _, ok := m.feedbacks[id]; !ok {
		return domain.ErrFeedbackNotFound
	}
	delete(m.feedbacks, id)
	return nil
}

func (m *MockFeedbackRepository) Count(ctx context.Context) (int64, error) {
	return int64(len(m.feedbacks)), nil
}

func (m *MockFeedbackRepository) AverageRating(ctx context.Context) (float64, error) {
	if len(m.feedbacks) == 0 {
		return 0, nil
	}
	var sum int
	for _, f := range m.feedbacks {
		sum += f.Rating
	}
	return float64(sum) / float64(len(m.feedbacks)), nil
}

func (m *MockFeedbackRepository) RatingDistribution(ctx context.Context) (map[int]int64, error) {
	dist := make(map[int]int64)
	for _, f := range m.feedbacks {
		dist[f.Rating]++
	}
	return dist, nil
}

func (m *MockFeedbackRepository) CountBySector(ctx context.Context, sectorID int64) (int64, error) {
	var count int64
	for _, f := range m.feedbacks {
		if f.SectorID != nil && *f.SectorID == sectorID {
			count++
		}
	}
	return count, nil
}

func (m *MockFeedbackRepository) AverageRatingBySector(ctx context.Context, sectorID int64) (float64, error) {
	var sum, count int
	for _, f := range m.feedbacks {
		if f.SectorID != nil && *f.SectorID == sectorID {
			sum += f.Rating
			count++
		}
	}
	if count == 0 {
		return 0, nil
	}
	return float64(sum) / float64(count), nil
}

func (m *MockFeedbackRepository) AverageRatingBySectorBetween(ctx context.Context, sectorID int64, from, to time.Time) (float64, error) {
	var sum, count int
	for _, f := range m.feedbacks {
		if f.SectorID == nil || *f.SectorID != sectorID {
			continue
		}
		if f.CreatedAt.Before(from) || f.CreatedAt.After(to) {
			continue
		}
		sum += f.Rating
		count++
	}
	if count == 0 {
		return 0, nil
	}
	return float64(sum) / float64(count), nil
}
