package minecraft

import (
	"encoding/json"
	"fmt"
)

// ArgumentType says whether an argument is passed to the game or the JVM.
type ArgumentType string

const (
	ArgumentTypeGame ArgumentType = "game"
	ArgumentTypeJvm  ArgumentType = "jvm"
)

// ArgumentValue carries one or several argument tokens. On the wire it is
// either a bare string or a list of strings.
type ArgumentValue struct {
	Single string
	Many   []string
}

// Values returns the tokens regardless of wire form.
func (v ArgumentValue) Values() []string {
	if v.Many != nil {
		return v.Many
	}
	return []string{v.Single}
}

func (v ArgumentValue) MarshalJSON() ([]byte, error) {
	if v.Many != nil {
		return json.Marshal(v.Many)
	}
	return json.Marshal(v.Single)
}

func (v *ArgumentValue) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		v.Single = single
		v.Many = nil
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("argument value is neither string nor list: %w", err)
	}
	v.Single = ""
	v.Many = many
	return nil
}

// Argument is a command line argument of the game or JVM. On the wire it is
// either a bare string, applied unconditionally, or an object carrying rules
// that decide whether its value is used.
type Argument struct {
	Rules []Rule
	Value ArgumentValue
}

// ruledArgument is the object wire form of Argument.
type ruledArgument struct {
	Rules []Rule        `json:"rules"`
	Value ArgumentValue `json:"value"`
}

func (a Argument) MarshalJSON() ([]byte, error) {
	if a.Rules == nil && a.Value.Many == nil {
		return json.Marshal(a.Value.Single)
	}
	return json.Marshal(ruledArgument{Rules: a.Rules, Value: a.Value})
}

func (a *Argument) UnmarshalJSON(data []byte) error {
	var plain string
	if err := json.Unmarshal(data, &plain); err == nil {
		a.Rules = nil
		a.Value = ArgumentValue{Single: plain}
		return nil
	}
	var ruled ruledArgument
	if err := json.Unmarshal(data, &ruled); err != nil {
		return fmt.Errorf("argument is neither string nor ruled object: %w", err)
	}
	a.Rules = ruled.Rules
	a.Value = ruled.Value
	return nil
}
