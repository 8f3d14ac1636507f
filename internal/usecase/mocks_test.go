package usecase_test

import (
	"context"
	"io"
	"time"

	"go-hiring-pipeline/internal/domain"

	"github.com/stretchr/testify/mock"
)

// Mock Repositories

type MockCandidateRepo struct {
	mock.Mock
}

func (m *MockCandidateRepo) Upsert(ctx context.Context, candidate *domain.Candidate) (bool, error) {
	args := m.Called(ctx, candidate)
	return args.Bool(0), args.Error(1)
}

func (m *MockCandidateRepo) GetByID(ctx context.Context, id string) (*domain.Candidate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Candidate), args.Error(1)
}

type MockResumeRepo struct {
	mock.Mock
}

func (m *MockResumeRepo) Create(ctx context.Context, resume *domain.Resume) error {
	return m.Called(ctx, resume).Error(0)
}

func (m *MockResumeRepo) GetByID(ctx context.Context, id int64) (*domain.Resume, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Resume), args.Error(1)
}

func (m *MockResumeRepo) Update(ctx context.Context, resume *domain.Resume) error {
	return m.Called(ctx, resume).Error(0)
}

func (m *MockResumeRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockResumeRepo) UpdateStatus(ctx context.Context, id int64, status string, comment *string) error {
	return m.Called(ctx, id, status, comment).Error(0)
}

func (m *MockResumeRepo) ListByCandidate(ctx context.Context, candidateID string) ([]domain.Resume, error) {
	args := m.Called(ctx, candidateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Resume), args.Error(1)
}

func (m *MockResumeRepo) ListAll(ctx context.Context, filter domain.ResumeFilter) ([]domain.Resume, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Resume), args.Error(1)
}

type MockInterviewRepo struct {
	mock.Mock
}

func (m *MockInterviewRepo) Create(ctx context.Context, interview *domain.Interview) error {
	return m.Called(ctx, interview).Error(0)
}

func (m *MockInterviewRepo) GetByID(ctx context.Context, id int64) (*domain.Interview, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Interview), args.Error(1)
}

func (m *MockInterviewRepo) Resolve(ctx context.Context, id int64, status, result string, comment *string) error {
	return m.Called(ctx, id, status, result, comment).Error(0)
}

func (m *MockInterviewRepo) ListByCandidate(ctx context.Context, candidateID string) ([]domain.Interview, error) {
	args := m.Called(ctx, candidateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Interview), args.Error(1)
}

func (m *MockInterviewRepo) ListAll(ctx context.Context, filter domain.InterviewFilter) ([]domain.Interview, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Interview), args.Error(1)
}

func (m *MockInterviewRepo) HasScheduled(ctx context.Context, candidateID, track string) (bool, error) {
	args := m.Called(ctx, candidateID, track)
	return args.Bool(0), args.Error(1)
}

func (m *MockInterviewRepo) HasSuccessful(ctx context.Context, candidateID, track string) (bool, error) {
	args := m.Called(ctx, candidateID, track)
	return args.Bool(0), args.Error(1)
}

type MockDocumentRepo struct {
	mock.Mock
}

func (m *MockDocumentRepo) GetByID(ctx context.Context, id int64) (*domain.Document, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentRepo) GetByCandidateSlot(ctx context.Context, candidateID, slot string) (*domain.Document, error) {
	args := m.Called(ctx, candidateID, slot)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentRepo) Create(ctx context.Context, doc *domain.Document, audit *domain.DocumentAudit) error {
	return m.Called(ctx, doc, audit).Error(0)
}

func (m *MockDocumentRepo) ReplaceFile(ctx context.Context, doc *domain.Document, audit *domain.DocumentAudit) error {
	return m.Called(ctx, doc, audit).Error(0)
}

func (m *MockDocumentRepo) UpdateStatus(ctx context.Context, id int64, status string, comment *string, audit *domain.DocumentAudit) error {
	return m.Called(ctx, id, status, comment, audit).Error(0)
}

func (m *MockDocumentRepo) ListByCandidate(ctx context.Context, candidateID string) ([]domain.Document, error) {
	args := m.Called(ctx, candidateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Document), args.Error(1)
}

func (m *MockDocumentRepo) ListAudit(ctx context.Context, documentID int64) ([]domain.DocumentAudit, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DocumentAudit), args.Error(1)
}

type MockPipelineRepo struct {
	mock.Mock
}

func (m *MockPipelineRepo) Snapshot(ctx context.Context, candidateID, track string) (*domain.PipelineSnapshot, error) {
	args := m.Called(ctx, candidateID, track)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PipelineSnapshot), args.Error(1)
}

func (m *MockPipelineRepo) CreateEmployee(ctx context.Context, employee *domain.Employee) error {
	return m.Called(ctx, employee).Error(0)
}

func (m *MockPipelineRepo) GetEmployee(ctx context.Context, candidateID string) (*domain.Employee, error) {
	args := m.Called(ctx, candidateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}

func (m *MockPipelineRepo) SetTrackRejection(ctx context.Context, candidateID, track, moderatorID string) (bool, error) {
	args := m.Called(ctx, candidateID, track, moderatorID)
	return args.Bool(0), args.Error(1)
}

type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, notification *domain.Notification) error {
	return m.Called(ctx, notification).Error(0)
}

func (m *MockNotificationRepo) ListByRecipient(ctx context.Context, recipientID string) ([]domain.Notification, error) {
	args := m.Called(ctx, recipientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Notification), args.Error(1)
}

func (m *MockNotificationRepo) MarkRead(ctx context.Context, recipientID string, id int64) error {
	return m.Called(ctx, recipientID, id).Error(0)
}

func (m *MockNotificationRepo) MarkAllRead(ctx context.Context, recipientID string) error {
	return m.Called(ctx, recipientID).Error(0)
}

// Collaborator fakes

type MockConflictChecker struct {
	mock.Mock
}

func (m *MockConflictChecker) IsConflicting(ctx context.Context, interviewerID, candidateID string, when time.Time) (bool, error) {
	args := m.Called(ctx, interviewerID, candidateID, when)
	return args.Bool(0), args.Error(1)
}

type FakeStorage struct {
	StoredName string
	Refs       int
}

func (f *FakeStorage) Store(ctx context.Context, name string, contentType string, body io.Reader) (string, error) {
	f.StoredName = name
	f.Refs++
	return "blob-ref", nil
}

func (f *FakeStorage) Resolve(ctx context.Context, fileRef string) (string, error) {
	return "https://files.example.com/" + fileRef, nil
}

// emittedEvent captures one notifier call
type emittedEvent struct {
	RecipientID string
	Type        string
	Message     string
}

// RecordingEmitter collects emitted notifications so tests can assert on the
// side channel without a database
type RecordingEmitter struct {
	Events []emittedEvent
}

func (e *RecordingEmitter) Emit(ctx context.Context, recipientID, notificationType, message string) {
	e.Events = append(e.Events, emittedEvent{
		RecipientID: recipientID,
		Type:        notificationType,
		Message:     message,
	})
}

func (e *RecordingEmitter) Last() emittedEvent {
	if len(e.Events) == 0 {
		return emittedEvent{}
	}
	return e.Events[len(e.Events)-1]
}
