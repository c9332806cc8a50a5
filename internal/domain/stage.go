package domain

// Stages is the installation pipeline in order. A project's current_stage
// holds one of these names.
var Stages = []string{
	"Advance payment done",
	"Approvals to be received",
	"Approvals Received/shared to customer",
	"First payment collected/loan process started",
	"Loan Approved",
	"Structure ordered/panels ordered",
	"Structure arrived/panels arrived",
	"2nd payment collected",
	"Installation pending",
	"Installation Done",
	"Net meter Application(yet to start)",
	"Net meter Application(If applicable)",
	"Net Meter Received",
	"Net Meter Installation completed",
	"Inspection pending",
	"Approved Inspection",
	"Subsidy(in progress)",
	"Subsidy disbursed",
	"Handover of Docs",
	"Final payment(done)/completed",
}

// legacy spellings still present in older rows
var stageAliases = map[string]string{
	"Subsisdy(in progress)": "Subsidy(in progress)",
}

// StageGroup is a contiguous slice [From, To) of Stages shown together in reports.
type StageGroup struct {
	Name string `json:"name"`
	From int    `json:"from"`
	To   int    `json:"to"`
}

var StageGroups = []StageGroup{
	{Name: "Initial Phase", From: 0, To: 3},
	{Name: "Procurement", From: 3, To: 8},
	{Name: "Installation", From: 8, To: 10},
	{Name: "Net Metering", From: 10, To: 14},
	{Name: "Completion", From: 14, To: 20},
}

func FirstStage() string { return Stages[0] }

func LastStage() string { return Stages[len(Stages)-1] }

// StageIndex returns the position of name in Stages, or -1.
func StageIndex(name string) int {
	if alias, ok := stageAliases[name]; ok {
		name = alias
	}
	for i, s := range Stages {
		if s == name {
			return i
		}
	}
	return -1
}

// StageGroupOf returns the group name for a stage, or "" if unknown.
func StageGroupOf(name string) string {
	idx := StageIndex(name)
	for _, g := range StageGroups {
		if idx >= g.From && idx < g.To {
			return g.Name
		}
	}
	return ""
}

// StageMove is the outcome of an advance or retreat.
type StageMove struct {
	From    string
	To      string
	Status  ProjectStatus
	Changed bool
}

// AdvanceStage moves one stage forward. At the last stage it is a no-op.
func AdvanceStage(current string, status ProjectStatus) (StageMove, error) {
	return moveStage(current, status, 1)
}

// RetreatStage moves one stage back. At the first stage it is a no-op.
func RetreatStage(current string, status ProjectStatus) (StageMove, error) {
	return moveStage(current, status, -1)
}

func moveStage(current string, status ProjectStatus, delta int) (StageMove, error) {
	idx := StageIndex(current)
	if idx < 0 {
		return StageMove{}, ErrUnknownStage
	}
	next := idx + delta
	if next < 0 || next >= len(Stages) {
		return StageMove{From: current, To: current, Status: status}, nil
	}
	return StageMove{
		From:    current,
		To:      Stages[next],
		Status:  StatusForStage(next),
		Changed: true,
	}, nil
}

// StatusForStage derives the lifecycle status implied by a stage position.
func StatusForStage(idx int) ProjectStatus {
	if idx == len(Stages)-1 {
		return StatusCompleted
	}
	return StatusActive
}
