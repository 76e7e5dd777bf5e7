package model

// IDType is the kind of government-issued identity document presented at the kiosk.
type IDType string

// IDTypes is the closed list of accepted documents. Membership is exact and
// case-sensitive; the same list feeds the request validator and the
// Appointments collection schema.
var IDTypes = []IDType{
	"National ID",
	"Voter's ID",
	"PhilHealth ID",
	"SSS ID",
	"GSIS ID",
	"Driver's License",
	"Passport",
	"PRC ID",
	"Postal ID",
	"TIN ID",
	"Senior Citizen ID",
	"PWD ID",
	"School ID",
	"Birth Certificate",
	"Marriage Certificate",
	"Police Clearance",
	"NBI Clearance",
}

var idTypeSet = func() map[IDType]struct{} {
	set := make(map[IDType]struct{}, len(IDTypes))
	for _, t := range IDTypes {
		set[t] = struct{}{}
	}
	return set
}()

func (t IDType) IsValid() bool {
	_, ok := idTypeSet[t]
	return ok
}

// IDTypeValues returns the accepted document kinds as plain strings.
func IDTypeValues() []string {
	values := make([]string, len(IDTypes))
	for i, t := range IDTypes {
		values[i] = string(t)
	}
	return values
}
