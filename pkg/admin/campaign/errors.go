package campaign

import "errors"

var (
	ErrCampaignNotFound         = errors.New("campaign not found")
	ErrCampaignNotActive        = errors.New("campaign is not accepting enrollments")
	ErrEnrollmentDeadlinePassed = errors.New("campaign enrollment deadline has passed")
	ErrBelowMinPurchase         = errors.New("purchase amount below the campaign minimum")
	ErrDuplicateEnrollment      = errors.New("client already has an active enrollment in this campaign")
	ErrEnrollmentNotFound       = errors.New("enrollment not found")
	ErrEnrollmentNotActive      = errors.New("enrollment is not active")
	ErrEnrollmentAlreadyDone    = errors.New("enrollment already resolved")
	ErrProgressNotFound         = errors.New("progress row not found")
	ErrProgressAlreadyResolved  = errors.New("criterion already left the pending state")
	ErrCriteriaNotMet           = errors.New("required criteria are not yet satisfied")
	ErrNoPaymentReference       = errors.New("no gateway payment reference for refund")
)
