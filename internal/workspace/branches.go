package workspace

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"provider-directory/internal/delivery/dto"
)

var (
	// ErrStale is returned when a response arrives for a view that has since
	// been left or pointed at another provider. The response is dropped.
	ErrStale      = errors.New("response belongs to a superseded view")
	ErrLoadFailed = errors.New("branch list could not be loaded")

	ErrBranchNotListed = errors.New("branch is not in this provider's list")
)

// BranchesSection owns the branch list of one provider, with loading and
// error state local to the section.
type BranchesSection struct {
	mu         sync.Mutex
	backend    Backend
	providerID string
	generation uint64
	loading    bool
	loaded     bool
	err        error
	branches   []dto.Branch
}

func newBranchesSection(backend Backend, providerID string) *BranchesSection {
	return &BranchesSection{
		backend:    backend,
		providerID: providerID,
		branches:   []dto.Branch{},
	}
}

// Load fetches the branch list. A response that comes back after
// Invalidate, SetProvider or a newer Load is discarded with ErrStale.
func (s *BranchesSection) Load(ctx context.Context) error {
	s.mu.Lock()
	s.generation++
	gen := s.generation
	providerID := s.providerID
	s.loading = true
	s.err = nil
	s.mu.Unlock()

	env := s.backend.ListBranches(ctx, providerID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		return ErrStale
	}
	s.loading = false

	if !env.Resp.Succeeded() {
		s.err = fmt.Errorf("%w: %s", ErrLoadFailed, env.Resp.Mensaje)
		s.branches = []dto.Branch{}
		return s.err
	}

	s.branches = append([]dto.Branch{}, env.Data...)
	s.loaded = true
	return nil
}

// Seed installs a list fetched by the page loader so that mounting the
// section does not fetch it again.
func (s *BranchesSection) Seed(branches []dto.Branch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.loading = false
	s.loaded = true
	s.err = nil
	s.branches = append([]dto.Branch{}, branches...)
}

// Invalidate makes every outstanding response stale.
func (s *BranchesSection) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.loading = false
}

// SetProvider repoints the section. Switching to another provider drops the
// loaded list.
func (s *BranchesSection) SetProvider(providerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if providerID == s.providerID {
		return
	}
	s.providerID = providerID
	s.generation++
	s.loading = false
	s.loaded = false
	s.err = nil
	s.branches = []dto.Branch{}
}

func (s *BranchesSection) ProviderID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.providerID
}

func (s *BranchesSection) Branches() []dto.Branch {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]dto.Branch{}, s.branches...)
}

func (s *BranchesSection) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *BranchesSection) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// Err is the error of the last load, or nil.
func (s *BranchesSection) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// add creates the branch and merges the server copy when the section still
// shows the provider it was created for.
func (s *BranchesSection) add(ctx context.Context, req dto.CreateBranchRequest) (dto.Branch, error) {
	s.mu.Lock()
	gen := s.generation
	s.mu.Unlock()

	env := s.backend.CreateBranch(ctx, req)
	if !env.Resp.Succeeded() {
		return dto.Branch{}, fmt.Errorf("%w: %s", ErrRejected, env.Resp.Mensaje)
	}

	branch := env.Data
	if !env.HasData() {
		branch = dto.Branch{
			ProviderID:     req.ProviderID,
			Name:           req.Name,
			Address:        req.Address,
			Phone:          req.Phone,
			Hours:          req.Hours,
			Status:         req.Status,
			PaymentMethods: req.PaymentMethods,
			Facilities:     req.Facilities,
			Insurances:     req.Insurances,
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen == s.generation && s.providerID == branch.ProviderID {
		s.branches = append(s.branches, branch)
	}
	return branch, nil
}

// update saves req over branch id. The server copy replaces the listed one;
// a branch moved to another provider leaves the list.
func (s *BranchesSection) update(ctx context.Context, id string, req dto.UpdateBranchRequest) (dto.Branch, error) {
	s.mu.Lock()
	gen := s.generation
	idx := s.indexOf(id)
	s.mu.Unlock()
	if idx < 0 {
		return dto.Branch{}, fmt.Errorf("%w: %s", ErrBranchNotListed, id)
	}

	env := s.backend.UpdateBranch(ctx, id, req)
	if !env.Resp.Succeeded() {
		return dto.Branch{}, fmt.Errorf("%w: %s", ErrRejected, env.Resp.Mensaje)
	}
	branch := env.Data
	if !env.HasData() {
		branch = dto.Branch{
			ID:             id,
			ProviderID:     req.ProviderID,
			Name:           req.Name,
			Address:        req.Address,
			Phone:          req.Phone,
			Hours:          req.Hours,
			Status:         req.Status,
			PaymentMethods: req.PaymentMethods,
			Facilities:     req.Facilities,
			Insurances:     req.Insurances,
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		return branch, nil
	}
	if i := s.indexOf(id); i >= 0 {
		if branch.ProviderID == s.providerID {
			s.branches[i] = branch
		} else {
			s.branches = append(s.branches[:i], s.branches[i+1:]...)
		}
	}
	return branch, nil
}

func (s *BranchesSection) indexOf(id string) int {
	for i, b := range s.branches {
		if b.ID == id {
			return i
		}
	}
	return -1
}
