package client

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gomcpgo/logo_image_ai/pkg/types"
)

// MockOutputURL is the image every successful mock prediction returns
const MockOutputURL = "https://replicate.delivery/mock/logo.png"

// MockClient is an in-memory Client for tests
type MockClient struct {
	// Control behavior
	ResponseDelay time.Duration // How long predictions take to succeed
	ShouldFail    bool          // Whether operations should fail
	FailAfter     time.Duration // Fail predictions after this duration; zero fails on create
	FailMessage   string        // Custom failure message
	Output        interface{}   // Output returned on success

	// Track calls for assertions
	CreateCalls []CreateCall
	GetCalls    []string
	CancelCalls []string

	predictions map[string]*MockPrediction
	mu          sync.Mutex
}

// CreateCall records a call to CreatePrediction
type CreateCall struct {
	Model     string
	Input     map[string]interface{}
	Timestamp time.Time
}

// MockPrediction represents a mock prediction
type MockPrediction struct {
	ID         string
	Status     string
	StartTime  time.Time
	CompleteAt time.Time
	Output     interface{}
	Error      interface{}
}

// NewMockClient creates a mock client whose predictions succeed on first poll
func NewMockClient() *MockClient {
	return &MockClient{
		Output:      []interface{}{MockOutputURL},
		predictions: make(map[string]*MockPrediction),
	}
}

// CreatePrediction creates a mock prediction
func (m *MockClient) CreatePrediction(ctx context.Context, model string, input map[string]interface{}) (*types.Prediction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CreateCalls = append(m.CreateCalls, CreateCall{
		Model:     model,
		Input:     input,
		Timestamp: time.Now(),
	})

	if m.ShouldFail && m.FailAfter == 0 {
		return nil, errors.New(m.failMessage())
	}

	predID := fmt.Sprintf("mock-pred-%d", len(m.predictions)+1)
	now := time.Now()
	m.predictions[predID] = &MockPrediction{
		ID:         predID,
		Status:     types.StatusStarting,
		StartTime:  now,
		CompleteAt: now.Add(m.ResponseDelay),
		Output:     m.Output,
	}

	return &types.Prediction{
		ID:        predID,
		Status:    types.StatusStarting,
		CreatedAt: now.Format(time.RFC3339),
	}, nil
}

// GetPrediction gets the status of a mock prediction
func (m *MockClient) GetPrediction(ctx context.Context, predictionID string) (*types.Prediction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.GetCalls = append(m.GetCalls, predictionID)

	pred, exists := m.predictions[predictionID]
	if !exists {
		return nil, fmt.Errorf("prediction not found: %s", predictionID)
	}

	resp := &types.Prediction{
		ID:        predictionID,
		Status:    types.StatusProcessing,
		CreatedAt: pred.StartTime.Format(time.RFC3339),
	}

	switch {
	case pred.Status == types.StatusCanceled || pred.Status == types.StatusFailed:
		resp.Status = pred.Status
		resp.Error = pred.Error
	case m.ShouldFail && m.FailAfter > 0 && time.Since(pred.StartTime) >= m.FailAfter:
		resp.Status = types.StatusFailed
		resp.Error = m.failMessage()
	case pred.Status == types.StatusSucceeded || !time.Now().Before(pred.CompleteAt):
		resp.Status = types.StatusSucceeded
		resp.Output = pred.Output
	}

	return resp, nil
}

// WaitForCompletion waits for a mock prediction to complete
func (m *MockClient) WaitForCompletion(ctx context.Context, predictionID string, timeout time.Duration) (*types.Prediction, error) {
	deadline := time.Now().Add(timeout)
	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
			if time.Now().After(deadline) {
				pred, _ := m.GetPrediction(ctx, predictionID)
				return pred, fmt.Errorf("operation timed out after %v: %w", timeout, context.DeadlineExceeded)
			}

			pred, err := m.GetPrediction(ctx, predictionID)
			if err != nil {
				return nil, err
			}

			switch pred.Status {
			case types.StatusSucceeded:
				return pred, nil
			case types.StatusFailed:
				return pred, errors.New(PredictionErrorMessage(pred))
			case types.StatusCanceled:
				return pred, errors.New("prediction was canceled")
			}
		}
	}
}

// CancelPrediction cancels a mock prediction
func (m *MockClient) CancelPrediction(ctx context.Context, predictionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CancelCalls = append(m.CancelCalls, predictionID)

	pred, exists := m.predictions[predictionID]
	if !exists {
		return fmt.Errorf("prediction not found: %s", predictionID)
	}

	pred.Status = types.StatusCanceled
	return nil
}

// SetPredictionFailed marks a prediction as failed
func (m *MockClient) SetPredictionFailed(predictionID string, errorMsg string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if pred, exists := m.predictions[predictionID]; exists {
		pred.Status = types.StatusFailed
		pred.Error = errorMsg
	}
}

// Calls returns a snapshot of recorded CreatePrediction calls
func (m *MockClient) Calls() []CreateCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]CreateCall(nil), m.CreateCalls...)
}

// Reset clears all state for a fresh test
func (m *MockClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.predictions = make(map[string]*MockPrediction)
	m.CreateCalls = nil
	m.GetCalls = nil
	m.CancelCalls = nil
	m.ShouldFail = false
	m.FailAfter = 0
	m.FailMessage = ""
}

func (m *MockClient) failMessage() string {
	if m.FailMessage != "" {
		return m.FailMessage
	}
	return "mock client configured to fail"
}
