package style

import "testing"

func TestResolveWithTraceRecordsProbes(t *testing.T) {
	root := newTestView("root", nil)
	child := newTestView("child", root)
	root.style.SetVariable("--gap", "8px", true)

	value, ok, trace := child.style.ResolveWithTrace("--gap")
	if !ok || value != "8px" {
		t.Fatalf("unexpected result %q %v", value, ok)
	}
	if len(trace.Steps) != 4 {
		t.Fatalf("expected 4 probes, got %+v", trace.Steps)
	}
	wantKeys := []string{"--gap", "scoped:--gap", "--gap", "scoped:--gap"}
	for i, step := range trace.Steps {
		if step.Key != wantKeys[i] {
			t.Fatalf("step %d: expected key %q, got %q", i, wantKeys[i], step.Key)
		}
	}

	source, found := trace.Source()
	if !found || source.Owner != "root" || source.Depth != 1 || source.Scope != ScopeScoped {
		t.Fatalf("unexpected source %+v", source)
	}
}

func TestResolveWithTraceNotFound(t *testing.T) {
	v := newTestView("solo", nil)
	_, ok, trace := v.style.ResolveWithTrace("--nope")
	if ok || trace.Found {
		t.Fatalf("expected not found trace")
	}
	if _, found := trace.Source(); found {
		t.Fatalf("expected no source step")
	}
}

func TestTraceJSONRoundTrip(t *testing.T) {
	v := newTestView("solo", nil)
	v.style.SetVariable("--a", "1", false)
	_, _, trace := v.style.ResolveWithTrace("--a")

	payload, err := trace.ToJSON()
	if err != nil {
		t.Fatalf("to json: %v", err)
	}
	decoded, err := TraceFromJSON(payload)
	if err != nil {
		t.Fatalf("from json: %v", err)
	}
	if decoded.Name != "--a" || decoded.Value != "1" || !decoded.Found || len(decoded.Steps) != 1 {
		t.Fatalf("unexpected decoded trace %+v", decoded)
	}
}
