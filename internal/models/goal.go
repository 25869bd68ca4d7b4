// ABOUTME: Goal model and GoalType policy table for Beeminder goals.
// ABOUTME: Defines the six goal types and their direction/quantity semantics.
package models

import "fmt"

// GoalType represents one of Beeminder's six goal type presets.
type GoalType string

const (
	GoalHustler  GoalType = "hustler"  // Do More
	GoalBiker    GoalType = "biker"    // Odometer
	GoalFatloser GoalType = "fatloser" // Weight Loss
	GoalGainer   GoalType = "gainer"   // Gain Weight
	GoalInboxer  GoalType = "inboxer"  // Inbox Fewer
	GoalDrinker  GoalType = "drinker"  // Do Less
)

// Policy captures the fundamental goal attributes a goal type is shorthand
// for. Yaw is the good side of the bright red line (+1 above, -1 below).
// Dir is the direction the red line slopes. Kyoom means datapoints are
// plotted as a running total. Odom means zeros are treated as accidental
// odometer resets.
type Policy struct {
	Yaw    int
	Dir    int
	Kyoom  bool
	Odom   bool
	Edgy   bool
	Aggday string
	Units  string
}

// MoreIsSafe reports whether entering more keeps the goal on the good side
// of the red line.
func (p Policy) MoreIsSafe() bool {
	return p.Yaw > 0
}

// Cumulative reports whether datapoints are plotted as a running total.
func (p Policy) Cumulative() bool {
	return p.Kyoom
}

// Monotonic reports whether the tracked quantity is a running total that
// must not decrease, as with odometer readings.
func (p Policy) Monotonic() bool {
	return p.Odom
}

// GoalPolicies maps each goal type to its policy. The attribute values
// mirror Beeminder's goal type table.
var GoalPolicies = map[GoalType]Policy{
	GoalHustler:  {Yaw: 1, Dir: 1, Kyoom: true, Aggday: "sum", Units: "units"},
	GoalBiker:    {Yaw: 1, Dir: 1, Odom: true, Aggday: "last", Units: "total"},
	GoalFatloser: {Yaw: -1, Dir: -1, Aggday: "min", Units: "weight"},
	GoalGainer:   {Yaw: 1, Dir: 1, Aggday: "max", Units: "weight"},
	GoalInboxer:  {Yaw: -1, Dir: -1, Aggday: "min", Units: "messages"},
	GoalDrinker:  {Yaw: -1, Dir: 1, Kyoom: true, Edgy: true, Aggday: "sum", Units: "units"},
}

// AllGoalTypes returns all valid goal types.
var AllGoalTypes = []GoalType{
	GoalHustler, GoalBiker, GoalFatloser, GoalGainer, GoalInboxer, GoalDrinker,
}

// LookupPolicy returns the policy for a goal type tag.
func LookupPolicy(gt GoalType) (Policy, bool) {
	p, ok := GoalPolicies[gt]
	return p, ok
}

// IsValidGoalType checks if a string is a valid goal type tag.
func IsValidGoalType(s string) bool {
	_, ok := GoalPolicies[GoalType(s)]
	return ok
}

// GoalTypeNames maps goal type tags to their human names.
var GoalTypeNames = map[GoalType]string{
	GoalHustler:  "Do More",
	GoalBiker:    "Odometer",
	GoalFatloser: "Weight Loss",
	GoalGainer:   "Gain Weight",
	GoalInboxer:  "Inbox Fewer",
	GoalDrinker:  "Do Less",
}

// Goal is a remote Beeminder goal. One of Rate, Goalval, and Goaldate is
// derived from the other two and comes back null from the API.
type Goal struct {
	ID         string       `json:"id,omitempty"`
	Slug       string       `json:"slug"`
	Title      string       `json:"title"`
	GoalType   GoalType     `json:"goal_type"`
	Gunits     string       `json:"gunits,omitempty"`
	Runits     string       `json:"runits,omitempty"`
	Rate       *float64     `json:"rate"`
	Goalval    *float64     `json:"goalval"`
	Goaldate   *int64       `json:"goaldate"`
	Fineprint  string       `json:"fineprint,omitempty"`
	Yaw        int          `json:"yaw,omitempty"`
	Dir        int          `json:"dir,omitempty"`
	Kyoom      bool         `json:"kyoom,omitempty"`
	Odom       bool         `json:"odom,omitempty"`
	Aggday     string       `json:"aggday,omitempty"`
	Curval     float64      `json:"curval,omitempty"`
	Numpts     int          `json:"numpts,omitempty"`
	Pledge     float64      `json:"pledge,omitempty"`
	Safebuf    int          `json:"safebuf"`
	Losedate   int64        `json:"losedate,omitempty"`
	Delta      float64      `json:"delta,omitempty"`
	Limsum     string       `json:"limsum,omitempty"`
	Urgencykey string       `json:"urgencykey,omitempty"`
	Autodata   string       `json:"autodata,omitempty"`
	Secret     bool         `json:"secret,omitempty"`
	Datapublic bool         `json:"datapublic,omitempty"`
	Frozen     bool         `json:"frozen,omitempty"`
	Won        bool         `json:"won,omitempty"`
	Lost       bool         `json:"lost,omitempty"`
	Queued     bool         `json:"queued,omitempty"`
	Todayta    bool         `json:"todayta,omitempty"`
	UpdatedAt  int64        `json:"updated_at,omitempty"`
	Datapoints []*Datapoint `json:"datapoints,omitempty"`
}

// Beemergency reports whether the goal derails today without new data.
func (g *Goal) Beemergency() bool {
	return g.Safebuf <= 0 && !g.Frozen && !g.Won
}

// TypeName returns the human name for the goal's type, or the raw tag for
// unrecognized types.
func (g *Goal) TypeName() string {
	if name, ok := GoalTypeNames[g.GoalType]; ok {
		return name
	}
	return string(g.GoalType)
}

// CommitmentFields counts how many of goaldate, goalval, and rate are set.
// Beeminder requires exactly two of the three at goal creation; the third
// is derived.
func CommitmentFields(goaldate *int64, goalval, rate *float64) int {
	n := 0
	if goaldate != nil {
		n++
	}
	if goalval != nil {
		n++
	}
	if rate != nil {
		n++
	}
	return n
}

// FieldError reports a named argument that failed validation.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid argument %q: %s", e.Field, e.Reason)
}

// ValidateGoalType rejects goal type tags outside the six presets.
func ValidateGoalType(s string) error {
	if !IsValidGoalType(s) {
		return &FieldError{
			Field:  "goal_type",
			Reason: fmt.Sprintf("unknown goal type %q (expected one of hustler, biker, fatloser, gainer, inboxer, drinker)", s),
		}
	}
	return nil
}

// ValidateCommitment enforces the two-of-three rule for goaldate, goalval,
// and rate at goal creation.
func ValidateCommitment(goaldate *int64, goalval, rate *float64) error {
	if n := CommitmentFields(goaldate, goalval, rate); n != 2 {
		return &FieldError{
			Field:  "rate",
			Reason: fmt.Sprintf("exactly two of goaldate, goalval, and rate are required, got %d", n),
		}
	}
	return nil
}

// ValidateRateDirection rejects a rate whose sign contradicts the slope the
// goal type commits to. A zero rate is always allowed.
func ValidateRateDirection(gt GoalType, rate *float64) error {
	if rate == nil || *rate == 0 {
		return nil
	}
	p, ok := LookupPolicy(gt)
	if !ok {
		return ValidateGoalType(string(gt))
	}
	if (*rate > 0 && p.Dir < 0) || (*rate < 0 && p.Dir > 0) {
		return &FieldError{
			Field:  "rate",
			Reason: fmt.Sprintf("rate %g conflicts with %s goals, which slope %s", *rate, gt, slopeWord(p.Dir)),
		}
	}
	return nil
}

func slopeWord(dir int) string {
	if dir < 0 {
		return "downward"
	}
	return "upward"
}
