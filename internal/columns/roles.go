package columns

// Canonical role names. The mail and CRM sides share the address roles but
// carry their own date role, and only the CRM side has an amount.
const (
	RoleAddress1 = "address1"
	RoleAddress2 = "address2"
	RoleCity     = "city"
	RoleState    = "state"
	RoleZip      = "zip"
	RoleMailDate = "mail_date"
	RoleCRMDate  = "crm_date"
	RoleAmount   = "amount"
)

// MailRoles lists the roles resolved against the mail table header.
var MailRoles = []string{RoleAddress1, RoleAddress2, RoleCity, RoleState, RoleZip, RoleMailDate}

// CRMRoles lists the roles resolved against the CRM table header.
var CRMRoles = []string{RoleAddress1, RoleAddress2, RoleCity, RoleState, RoleZip, RoleCRMDate, RoleAmount}

// Synonyms maps each role to the header spellings it auto-resolves from.
// Matching is case-insensitive and first-synonym-wins within a role.
var Synonyms = map[string][]string{
	RoleAddress1: {"address 1", "address1", "street", "street address", "addr1"},
	RoleAddress2: {"address 2", "address2", "apt", "unit", "suite", "addr2"},
	RoleCity:     {"city", "town"},
	RoleState:    {"state", "province", "st"},
	RoleZip:      {"zip", "zipcode", "postal_code", "postcode", "zip code"},
	RoleMailDate: {"mail date", "sent_date", "date sent", "date"},
	RoleCRMDate:  {"job date", "crm date", "date"},
	RoleAmount:   {"job value", "amount", "crm amount", "value", "invoice amount"},
}
