package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/xavierca1/coachflow/internal/entity"
	"github.com/xavierca1/coachflow/internal/infra/database"
)

const CodeAlreadyOnboarded = "ALREADY_ONBOARDED"

// account is the slice of the auth-side profiles row this service touches.
type account struct {
	ID                  string `json:"id"`
	OnboardingCompleted bool   `json:"onboarding_completed"`
}

// Onboarding records and checks the one-time business profile.
type Onboarding struct {
	profiles *database.Repository[entity.BusinessProfile]
	accounts *database.Repository[account]
	log      zerolog.Logger
}

func NewOnboarding(store database.Store, log zerolog.Logger) *Onboarding {
	return &Onboarding{
		profiles: database.NewRepository[entity.BusinessProfile](store, entity.KindBusinessProfile),
		accounts: database.NewRepository[account](store, entity.KindProfiles),
		log:      log,
	}
}

func byID(p Principal) database.Query {
	return database.Query{Owner: p.UserID, OwnerColumn: "id", Token: p.AccessToken, Limit: 1}
}

// Profile returns the caller's business profile or entity.ErrProfileNotFound.
func (o *Onboarding) Profile(ctx context.Context, p Principal) (*entity.BusinessProfile, error) {
	rows, err := o.profiles.List(ctx, byID(p))
	if err != nil {
		return nil, &FetchError{Kind: entity.KindBusinessProfile, Op: "list", Err: err}
	}
	if len(rows) == 0 {
		return nil, entity.ErrProfileNotFound
	}
	return &rows[0], nil
}

// Completed reports whether the caller has a business profile.
func (o *Onboarding) Completed(ctx context.Context, p Principal) (bool, error) {
	_, err := o.Profile(ctx, p)
	if errors.Is(err, entity.ErrProfileNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Complete stores the business profile and then flags the account as
// onboarded. Only the profile insert is required: the guard reads the
// business profile, so a missing or unwritable profiles row is logged and
// skipped.
func (o *Onboarding) Complete(ctx context.Context, p Principal, input OnboardingInput) (*entity.BusinessProfile, error) {
	if err := invalid(ValidateOnboardingInput(input)); err != nil {
		return nil, err
	}
	profile, err := entity.NewBusinessProfile(p.UserID, input.BusinessName, input.BusinessEmail,
		input.PhoneNumber, input.WhatsAppNumber, input.BusinessNiche, input.MonthlyClients)
	if err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}

	var stored *entity.BusinessProfile
	txn := NewTransaction(o.log)

	txn.AddOperation("insert_business_profile", func(ctx context.Context) error {
		var err error
		stored, err = o.profiles.Create(ctx, profile, byID(p))
		return err
	})
	txn.AddCompensation(func(ctx context.Context) error {
		return o.profiles.Delete(ctx, p.UserID, byID(p))
	})

	txn.AddBestEffort("mark_account_onboarded", func(ctx context.Context) error {
		_, err := o.accounts.Update(ctx, p.UserID, map[string]any{"onboarding_completed": true}, byID(p))
		return err
	})

	if err := txn.Execute(ctx); err != nil {
		var rej *database.RejectedError
		if errors.As(err, &rej) {
			if rej.Code == "23505" {
				return nil, &DomainError{Code: CodeAlreadyOnboarded, Message: "business profile already exists"}
			}
			return nil, &ValidationError{Message: rej.Message}
		}
		return nil, &FetchError{Kind: entity.KindBusinessProfile, Op: "create", Err: fmt.Errorf("onboarding: %w", err)}
	}

	o.log.Info().Str("user_id", p.UserID).Msg("onboarding completed")
	return stored, nil
}
