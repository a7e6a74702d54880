package identity

import (
	"context"

	appaudit "github.com/lendledger/backend/internal/application/audit"
	applending "github.com/lendledger/backend/internal/application/lending"
	"github.com/lendledger/backend/internal/domain/identity"
	"github.com/lendledger/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ProfileService manages local user records and their creditor/debtor
// profiles. Credentials and token issuance live in the external
// identity gateway; this service only mirrors who a token subject is.
type ProfileService struct {
	users     identity.UserRepository
	creditors identity.CreditorRepository
	debtors   identity.DebtorRepository
	recorder  *appaudit.Recorder
	logger    *zap.Logger
}

// NewProfileService creates a new ProfileService
func NewProfileService(
	users identity.UserRepository,
	creditors identity.CreditorRepository,
	debtors identity.DebtorRepository,
	recorder *appaudit.Recorder,
	logger *zap.Logger,
) *ProfileService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileService{
		users:     users,
		creditors: creditors,
		debtors:   debtors,
		recorder:  recorder,
		logger:    logger,
	}
}

// Register provisions a user record plus its role profile for a gateway
// identity. Admin only. The gateway user id becomes the local user id
// so token subjects resolve without a mapping table.
func (s *ProfileService) Register(ctx context.Context, actor applending.Actor, input RegisterUserInput) (*ProfileDTO, error) {
	if !actor.IsAdmin() {
		return nil, shared.NewAuthorizationError("Only admins can register users")
	}

	role, err := identity.ParseRole(input.Role)
	if err != nil {
		return nil, err
	}

	existing, err := s.users.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewValidationError("user_id", "already registered")
	}

	user, err := identity.NewUser(input.Name, input.Email, role)
	if err != nil {
		return nil, err
	}
	user.ID = input.UserID

	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}

	profile := &ProfileDTO{User: ToUserDTO(user)}
	switch role {
	case identity.RoleCreditor:
		creditor, err := identity.NewCreditor(user.ID, input.Organization, input.Contact)
		if err != nil {
			return nil, err
		}
		if err := s.creditors.Save(ctx, creditor); err != nil {
			return nil, err
		}
		dto := ToCreditorDTO(creditor)
		profile.Creditor = &dto
	case identity.RoleDebtor:
		fullName := input.FullName
		if fullName == "" {
			fullName = input.Name
		}
		debtor, err := identity.NewDebtor(user.ID, fullName, input.Contact)
		if err != nil {
			return nil, err
		}
		if err := s.debtors.Save(ctx, debtor); err != nil {
			return nil, err
		}
		dto := ToDebtorDTO(debtor)
		profile.Debtor = &dto
	}

	s.logger.Info("user registered",
		zap.String("user_id", user.ID.String()),
		zap.String("role", role.String()))
	s.recorder.Record(ctx, actor.UserID, "user.registered", map[string]any{
		"user_id": user.ID,
		"role":    role.String(),
	})
	return profile, nil
}

// Profile returns the actor's own user record and role profile
func (s *ProfileService) Profile(ctx context.Context, actor applending.Actor) (*ProfileDTO, error) {
	user, err := s.users.FindByID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, shared.NewNotFoundError("User")
	}

	profile := &ProfileDTO{User: ToUserDTO(user)}
	switch user.Role {
	case identity.RoleCreditor:
		creditor, err := s.creditors.FindByUserID(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		if creditor != nil {
			dto := ToCreditorDTO(creditor)
			profile.Creditor = &dto
		}
	case identity.RoleDebtor:
		debtor, err := s.debtors.FindByUserID(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		if debtor != nil {
			dto := ToDebtorDTO(debtor)
			profile.Debtor = &dto
		}
	}
	return profile, nil
}

// UpdateContact updates the actor's own profile contact details
func (s *ProfileService) UpdateContact(ctx context.Context, actor applending.Actor, input UpdateContactInput) (*ProfileDTO, error) {
	switch {
	case actor.IsCreditor():
		creditor, err := s.creditors.FindByUserID(ctx, actor.UserID)
		if err != nil {
			return nil, err
		}
		if creditor == nil {
			return nil, shared.NewNotFoundError("Creditor profile")
		}
		organization := input.Organization
		if organization == "" {
			organization = creditor.Organization
		}
		if err := creditor.UpdateContact(organization, input.Contact); err != nil {
			return nil, err
		}
		if err := s.creditors.Save(ctx, creditor); err != nil {
			return nil, err
		}
	case actor.IsDebtor():
		debtor, err := s.debtors.FindByUserID(ctx, actor.UserID)
		if err != nil {
			return nil, err
		}
		if debtor == nil {
			return nil, shared.NewNotFoundError("Debtor profile")
		}
		fullName := input.FullName
		if fullName == "" {
			fullName = debtor.FullName
		}
		if err := debtor.UpdateContact(fullName, input.Contact); err != nil {
			return nil, err
		}
		if err := s.debtors.Save(ctx, debtor); err != nil {
			return nil, err
		}
	default:
		return nil, shared.NewValidationError("role", "admins have no contact profile")
	}

	s.recorder.Record(ctx, actor.UserID, "profile.updated", map[string]any{
		"user_id": actor.UserID,
	})
	return s.Profile(ctx, actor)
}

// ListCreditors returns every creditor profile. Admin only.
func (s *ProfileService) ListCreditors(ctx context.Context, actor applending.Actor) ([]CreditorDTO, error) {
	if !actor.IsAdmin() {
		return nil, shared.NewAuthorizationError("Only admins can list creditors")
	}
	creditors, err := s.creditors.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	dtos := make([]CreditorDTO, len(creditors))
	for i := range creditors {
		dtos[i] = ToCreditorDTO(&creditors[i])
	}
	return dtos, nil
}

// ListDebtors returns every debtor profile. Admin only.
func (s *ProfileService) ListDebtors(ctx context.Context, actor applending.Actor) ([]DebtorDTO, error) {
	if !actor.IsAdmin() {
		return nil, shared.NewAuthorizationError("Only admins can list debtors")
	}
	debtors, err := s.debtors.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	dtos := make([]DebtorDTO, len(debtors))
	for i := range debtors {
		dtos[i] = ToDebtorDTO(&debtors[i])
	}
	return dtos, nil
}
