package minecraft

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestArgument_UnmarshalPlainString(t *testing.T) {
	var arg Argument
	if err := json.Unmarshal([]byte(`"--demo"`), &arg); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if arg.Rules != nil {
		t.Errorf("Rules = %+v, want nil for plain argument", arg.Rules)
	}
	if arg.Value.Single != "--demo" || arg.Value.Many != nil {
		t.Errorf("Value = %+v, want single token --demo", arg.Value)
	}
}

func TestArgument_UnmarshalRuledObject(t *testing.T) {
	raw := `{
		"rules": [{"action": "allow", "os": {"name": "osx"}}],
		"value": ["-XstartOnFirstThread"]
	}`
	var arg Argument
	if err := json.Unmarshal([]byte(raw), &arg); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if len(arg.Rules) != 1 || arg.Rules[0].Action != RuleActionAllow {
		t.Fatalf("Rules = %+v, want one allow rule", arg.Rules)
	}
	if arg.Rules[0].Os == nil || arg.Rules[0].Os.Name != OsOsx {
		t.Errorf("Os rule = %+v, want osx", arg.Rules[0].Os)
	}
	if !reflect.DeepEqual(arg.Value.Values(), []string{"-XstartOnFirstThread"}) {
		t.Errorf("Values = %v", arg.Value.Values())
	}
}

func TestArgument_UnmarshalRuledSingleValue(t *testing.T) {
	raw := `{"rules": [{"action": "allow", "features": {"is_demo_user": true}}], "value": "--demo"}`
	var arg Argument
	if err := json.Unmarshal([]byte(raw), &arg); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if arg.Rules[0].Features == nil || arg.Rules[0].Features.IsDemoUser == nil || !*arg.Rules[0].Features.IsDemoUser {
		t.Errorf("feature rule = %+v, want is_demo_user true", arg.Rules[0].Features)
	}
	if !reflect.DeepEqual(arg.Value.Values(), []string{"--demo"}) {
		t.Errorf("Values = %v", arg.Value.Values())
	}
}

func TestArgument_MarshalPlainString(t *testing.T) {
	arg := Argument{Value: ArgumentValue{Single: "--username"}}
	data, err := json.Marshal(arg)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(data) != `"--username"` {
		t.Errorf("marshal = %s, want bare string form", data)
	}
}

func TestArgument_MarshalRuled(t *testing.T) {
	arg := Argument{
		Rules: []Rule{{Action: RuleActionAllow}},
		Value: ArgumentValue{Many: []string{"-a", "-b"}},
	}
	data, err := json.Marshal(arg)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var back Argument
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("round-trip unmarshal failed: %v", err)
	}
	if !reflect.DeepEqual(back, arg) {
		t.Errorf("round-trip = %+v, want %+v", back, arg)
	}
}

func TestArgument_UnmarshalRejectsOtherForms(t *testing.T) {
	var arg Argument
	if err := json.Unmarshal([]byte(`42`), &arg); err == nil {
		t.Error("expected error for numeric argument")
	}
}

func TestArgumentValue_Forms(t *testing.T) {
	var v ArgumentValue
	if err := json.Unmarshal([]byte(`["x","y"]`), &v); err != nil {
		t.Fatalf("unmarshal list failed: %v", err)
	}
	if !reflect.DeepEqual(v.Values(), []string{"x", "y"}) {
		t.Errorf("Values = %v, want [x y]", v.Values())
	}

	if err := json.Unmarshal([]byte(`"z"`), &v); err != nil {
		t.Fatalf("unmarshal string failed: %v", err)
	}
	if v.Many != nil {
		t.Error("Many should be cleared when a string form is decoded")
	}
	if !reflect.DeepEqual(v.Values(), []string{"z"}) {
		t.Errorf("Values = %v, want [z]", v.Values())
	}
}

func TestLibrary_IncludeInClasspathDefault(t *testing.T) {
	var lib Library
	if err := json.Unmarshal([]byte(`{"name": "org.ow2.asm:asm:9.6"}`), &lib); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if !lib.IncludeInClasspath {
		t.Error("IncludeInClasspath should default to true when omitted")
	}

	if err := json.Unmarshal([]byte(`{"name": "x", "include_in_classpath": false}`), &lib); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if lib.IncludeInClasspath {
		t.Error("explicit include_in_classpath false was ignored")
	}
}

func TestParseJavaProfile(t *testing.T) {
	valid := []string{"jre-legacy", "java-runtime-alpha", "java-runtime-beta", "java-runtime-gamma", "minecraft-java-exe"}
	for _, s := range valid {
		if _, err := ParseJavaProfile(s); err != nil {
			t.Errorf("ParseJavaProfile(%q) failed: %v", s, err)
		}
	}
	if _, err := ParseJavaProfile("java-11"); err == nil {
		t.Error("expected error for unknown java profile")
	}
}
