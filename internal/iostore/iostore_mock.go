package iostore

import (
	"context"

	"github.com/huangsam/workbench/internal/contract"
	"github.com/huangsam/workbench/schema"
	"github.com/stretchr/testify/mock"
)

// MockDogStore is a mock implementation of DogStore for testing.
type MockDogStore struct {
	mock.Mock
}

var _ contract.DogStore = &MockDogStore{} // Compile-time check

// Load implements the DogStore interface.
func (m *MockDogStore) Load(ctx context.Context) ([]schema.Dog, error) {
	args := m.Called(ctx)
	dogs, _ := args.Get(0).([]schema.Dog)
	return dogs, args.Error(1)
}

// Save implements the DogStore interface.
func (m *MockDogStore) Save(ctx context.Context, dogs []schema.Dog) error {
	args := m.Called(ctx, dogs)
	return args.Error(0)
}

// GetStatus implements the DogStore interface.
func (m *MockDogStore) GetStatus(ctx context.Context) (schema.StoreStatus, error) {
	args := m.Called(ctx)
	return args.Get(0).(schema.StoreStatus), args.Error(1)
}

// Close implements the DogStore interface.
func (m *MockDogStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockDefectSource is a mock implementation of DefectSource for testing.
type MockDefectSource struct {
	mock.Mock
}

var _ contract.DefectSource = &MockDefectSource{} // Compile-time check

// Records implements the DefectSource interface.
func (m *MockDefectSource) Records(ctx context.Context) ([]schema.DefectRecord, error) {
	args := m.Called(ctx)
	records, _ := args.Get(0).([]schema.DefectRecord)
	return records, args.Error(1)
}

// Close implements the DefectSource interface.
func (m *MockDefectSource) Close() error {
	args := m.Called()
	return args.Error(0)
}
