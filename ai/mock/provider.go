// Copyright 2026 Quaesit Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package mock

import "github.com/quaesit/quaesit/ai"

// MockProvider is a test double for ai.Provider.
// It aggregates mock embedder, classifier, and validator instances.
type MockProvider struct {
	embedder   *MockEmbedder
	classifier *MockQueryClassifier
	validator  *MockCandidateValidator
}

// NewMockProvider creates a new mock provider with default mock services.
//
// Returns ai.Provider interface for consistency with production constructors.
// Use GetMockEmbedder()/GetMockClassifier()/GetMockValidator() to access
// concrete types for test assertions.
func NewMockProvider() ai.Provider {
	return &MockProvider{
		embedder:   NewMockEmbedder(),
		classifier: NewMockQueryClassifier(),
		validator:  NewMockCandidateValidator(),
	}
}

// NewMockProviderWithServices creates a mock provider with custom mock services.
// This allows full control over the behavior of each service.
func NewMockProviderWithServices(embedder *MockEmbedder, classifier *MockQueryClassifier, validator *MockCandidateValidator) ai.Provider {
	return &MockProvider{
		embedder:   embedder,
		classifier: classifier,
		validator:  validator,
	}
}

// Embedder returns the mock embedder.
func (p *MockProvider) Embedder() ai.Embedder {
	return p.embedder
}

// QueryClassifier returns the mock classifier.
func (p *MockProvider) QueryClassifier() ai.QueryClassifier {
	return p.classifier
}

// CandidateValidator returns the mock validator.
func (p *MockProvider) CandidateValidator() ai.CandidateValidator {
	return p.validator
}

// Close is a no-op for mock provider.
func (p *MockProvider) Close() error {
	return nil
}

// GetMockEmbedder returns the underlying mock embedder for test assertions.
func (p *MockProvider) GetMockEmbedder() *MockEmbedder {
	return p.embedder
}

// GetMockClassifier returns the underlying mock classifier for test assertions.
func (p *MockProvider) GetMockClassifier() *MockQueryClassifier {
	return p.classifier
}

// GetMockValidator returns the underlying mock validator for test assertions.
func (p *MockProvider) GetMockValidator() *MockCandidateValidator {
	return p.validator
}
