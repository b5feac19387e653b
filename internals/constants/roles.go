package constants

import "fmt"

// Role names as stored in users.user_role and in the JWT "role" claim.
const (
	RoleAdmin         = "admin"
	RoleChairman      = "chairman"
	RoleCaretaker     = "caretaker"
	RoleGoodBoy       = "goodboy"
	RoleAssistOfficer = "assist_officer"
	RoleTrader        = "trader"
)

// Role error message templates
const (
	ErrOnlyChairmenCanAccess   = "Only a chairman or admin may access %s."
	ErrOnlyCollectorsCanAccess = "Only field collectors may access %s."
	ErrOnlyAdminsCanAccess     = "Only an admin may access %s."
	ErrOnlyBackOfficeCanAccess = "Only back-office staff may access %s."
)

func RoleErrorChairman(feature string) string {
	return fmt.Sprintf(ErrOnlyChairmenCanAccess, feature)
}

func RoleErrorCollector(feature string) string {
	return fmt.Sprintf(ErrOnlyCollectorsCanAccess, feature)
}

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorBackOffice(feature string) string {
	return fmt.Sprintf(ErrOnlyBackOfficeCanAccess, feature)
}

// ==========================
// Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleAdmin,
		RoleChairman,
		RoleCaretaker,
		RoleGoodBoy,
		RoleAssistOfficer,
		RoleTrader,
	}

	// Roles allowed to configure levies and read market-wide reports.
	ChairmanAndAbove = []string{
		RoleChairman,
		RoleAdmin,
	}

	// Roles admitted into the back-office group. Assist officers only reach
	// manual collection entry; each feature route narrows further.
	BackOfficeRoles = []string{
		RoleChairman,
		RoleAdmin,
		RoleAssistOfficer,
	}

	// Field roles allowed to scan and collect.
	CollectorRoles = []string{
		RoleGoodBoy,
		RoleAssistOfficer,
		RoleCaretaker,
	}

	// Manual (non-QR) collection entry.
	ManualEntryRoles = []string{
		RoleChairman,
		RoleAssistOfficer,
		RoleAdmin,
	}

	AdminOnly = []string{
		RoleAdmin,
	}
)
