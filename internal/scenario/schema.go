package scenario

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
)

// scenarioSchema constrains the raw scenario document. Definitions are
// closed, so unknown keys inside an agent table or at the top level are
// rejected. Image-source exclusivity and name uniqueness are semantic
// rules checked separately, not here.
const scenarioSchema = `
#Agent: {
	name?:          string
	image?:         string
	agentbeats_id?: string
	env?: {[string]: string | bool | number}
}

#Participant: #Agent & {
	name: string
}

#Scenario: {
	green_agent?:  #Agent
	participants?: [...#Participant]
	config?: {...}
}
`

// CheckSchema validates a raw decoded scenario document against the
// scenario schema. It returns one message per violation, empty when the
// document conforms. All violations are reported, not just the first.
func CheckSchema(raw map[string]any) []string {
	ctx := cuecontext.New()

	schema := ctx.CompileString(scenarioSchema)
	if err := schema.Err(); err != nil {
		// The schema is a compile-time constant; failing to compile it
		// is a bug, not a user error.
		panic(fmt.Sprintf("scenario: invalid embedded schema: %v", err))
	}

	def := schema.LookupPath(cue.ParsePath("#Scenario"))
	unified := def.Unify(ctx.Encode(raw))

	err := unified.Validate(cue.Final(), cue.Concrete(true))
	if err == nil {
		return nil
	}

	var details []string
	for _, e := range cueerrors.Errors(err) {
		details = append(details, e.Error())
	}
	return details
}
