package sqlite

// Schema DDL for all tables. Every column is nullable so that a damaged row
// surfaces as types.MissingFieldError on load rather than a scan failure.
// position keeps collection order.
const (
	createContacts = `CREATE TABLE IF NOT EXISTS contacts (
    name TEXT PRIMARY KEY,
    position INTEGER NOT NULL,
    phone TEXT,
    nric TEXT,
    email TEXT,
    address TEXT
);`

	createContactTags = `CREATE TABLE IF NOT EXISTS contact_tags (
    contact_name TEXT NOT NULL,
    tag TEXT NOT NULL,
    PRIMARY KEY (contact_name, tag),
    FOREIGN KEY (contact_name) REFERENCES contacts(name) ON DELETE CASCADE
);`

	createContactContracts = `CREATE TABLE IF NOT EXISTS contact_contracts (
    contact_name TEXT NOT NULL,
    contract_id TEXT NOT NULL,
    PRIMARY KEY (contact_name, contract_id),
    FOREIGN KEY (contact_name) REFERENCES contacts(name) ON DELETE CASCADE
);`

	createPolicies = `CREATE TABLE IF NOT EXISTS policies (
    id TEXT PRIMARY KEY,
    position INTEGER NOT NULL,
    name TEXT,
    details TEXT
);`

	createPolicyContracts = `CREATE TABLE IF NOT EXISTS policy_contracts (
    policy_id TEXT NOT NULL,
    contract_id TEXT NOT NULL,
    PRIMARY KEY (policy_id, contract_id),
    FOREIGN KEY (policy_id) REFERENCES policies(id) ON DELETE CASCADE
);`

	createContracts = `CREATE TABLE IF NOT EXISTS contracts (
    id TEXT PRIMARY KEY,
    position INTEGER NOT NULL,
    name TEXT,
    nric TEXT,
    policy_id TEXT,
    signed TEXT,
    expiry TEXT,
    premium_cents INTEGER
);`

	createAppointments = `CREATE TABLE IF NOT EXISTS appointments (
    id TEXT PRIMARY KEY,
    position INTEGER NOT NULL,
    nric TEXT,
    date TEXT,
    details TEXT
);`
)

// Index DDL for common queries.
const (
	idxContractsPolicy  = `CREATE INDEX IF NOT EXISTS idx_contracts_policy ON contracts(policy_id);`
	idxContractsNRIC    = `CREATE INDEX IF NOT EXISTS idx_contracts_nric ON contracts(nric);`
	idxAppointmentsNRIC = `CREATE INDEX IF NOT EXISTS idx_appointments_nric ON appointments(nric);`
	idxContactsNRIC     = `CREATE INDEX IF NOT EXISTS idx_contacts_nric ON contacts(nric);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createContacts,
	createContactTags,
	createContactContracts,
	createPolicies,
	createPolicyContracts,
	createContracts,
	createAppointments,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxContractsPolicy,
	idxContractsNRIC,
	idxAppointmentsNRIC,
	idxContactsNRIC,
}

// clearOrder lists tables in the order Save empties them: children first.
var clearOrder = []string{
	"contact_tags",
	"contact_contracts",
	"policy_contracts",
	"contacts",
	"policies",
	"contracts",
	"appointments",
}
