package domain

// Agent is the denormalized view of a helpdesk agent.
type Agent struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Company is the denormalized view of a helpdesk department.
type Company struct {
	Name        string `json:"name"`
	TAMName     string `json:"tam_name"`
	AccountTier string `json:"account_tier"`
}

// Lookups bundles the side tables a normalization pass resolves against.
// Each invocation treats a Lookups value as an immutable snapshot.
type Lookups struct {
	Agents    map[int64]Agent   `json:"agents"`
	Companies map[int64]Company `json:"companies"`
	Groups    map[int64]string  `json:"groups"`
}

// Sentinel values used when a lookup misses.
const (
	UnknownCompany  = "Unknown Company"
	UnknownTAM      = "Unknown TAM"
	UnknownTier     = "Unknown Tier"
	UnassignedName  = "Unassigned"
	UnassignedEmail = "N/A"
)

// Agent resolves a responder id, falling back to the unassigned sentinel.
func (l Lookups) Agent(responderID *int64) Agent {
	if responderID != nil {
		if agent, ok := l.Agents[*responderID]; ok {
			return agent
		}
	}
	return Agent{Name: UnassignedName, Email: UnassignedEmail}
}

// Company resolves a department id, falling back to the unknown sentinels.
func (l Lookups) Company(departmentID *int64) Company {
	if departmentID != nil {
		if company, ok := l.Companies[*departmentID]; ok {
			return company
		}
	}
	return Company{Name: UnknownCompany, TAMName: UnknownTAM, AccountTier: UnknownTier}
}

// Group resolves a group id, falling back to "Unassigned".
func (l Lookups) Group(groupID *int64) string {
	if groupID != nil {
		if name, ok := l.Groups[*groupID]; ok {
			return name
		}
	}
	return UnassignedName
}
