package todo

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// fakePersistence records every save and serves loads from a map.
type fakePersistence struct {
	data    map[string][]Task
	saves   int
	saveErr error
}

func newFakePersistence() *fakePersistence {
	return &fakePersistence{data: make(map[string][]Task)}
}

func (f *fakePersistence) Load(key string) []Task {
	return append([]Task(nil), f.data[key]...)
}

func (f *fakePersistence) Save(key string, tasks []Task) error {
	f.saves++
	if f.saveErr != nil {
		return f.saveErr
	}
	f.data[key] = append([]Task(nil), tasks...)
	return nil
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newTestStore(t *testing.T, p *fakePersistence) *Store {
	t.Helper()
	return Open(p, DefaultKey, WithIDGenerator(sequentialIDs()))
}

func TestOpenLoadsPersistedTasks(t *testing.T) {
	p := newFakePersistence()
	p.data["tasks"] = []Task{
		{ID: "a", Text: "first", IsCompleted: true},
		{ID: "b", Text: "second"},
	}

	s := Open(p, "")
	if s.Key() != DefaultKey {
		t.Errorf("Key: got %q, want %q", s.Key(), DefaultKey)
	}
	if diff := cmp.Diff(p.data["tasks"], s.Tasks()); diff != "" {
		t.Errorf("Tasks mismatch (-want +got):\n%s", diff)
	}
	if p.saves != 0 {
		t.Errorf("Open should not write, got %d saves", p.saves)
	}
}

func TestOpenEmpty(t *testing.T) {
	s := Open(newFakePersistence(), DefaultKey)
	if s.Len() != 0 {
		t.Fatalf("Len: got %d, want 0", s.Len())
	}
	if got := s.FilteredView(); len(got) != 0 {
		t.Errorf("FilteredView: got %v, want empty", got)
	}
}

func TestAdd(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain", "Buy milk", "Buy milk"},
		{"leading and trailing spaces", "  Walk dog  ", "Walk dog"},
		{"tabs and newlines", "\tcall mom\n", "call mom"},
		{"inner spaces kept", "a  b", "a  b"},
		{"invalid utf-8 replaced", "caf\xe9", "caf\uFFFD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newFakePersistence()
			s := newTestStore(t, p)

			task, err := s.Add(tt.raw)
			if err != nil {
				t.Fatalf("Add: %v", err)
			}
			if task.Text != tt.want {
				t.Errorf("Text: got %q, want %q", task.Text, tt.want)
			}
			if task.IsCompleted {
				t.Error("new task should be pending")
			}
			if task.ID == "" {
				t.Error("new task should have an id")
			}
			if s.Len() != 1 {
				t.Errorf("Len: got %d, want 1", s.Len())
			}
			if p.saves != 1 {
				t.Errorf("saves: got %d, want 1", p.saves)
			}
			if diff := cmp.Diff([]Task{task}, p.data["tasks"]); diff != "" {
				t.Errorf("persisted mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAddRejectsBlank(t *testing.T) {
	for _, raw := range []string{"", "   ", "\t\n"} {
		t.Run(fmt.Sprintf("%q", raw), func(t *testing.T) {
			p := newFakePersistence()
			s := newTestStore(t, p)
			if _, err := s.Add("keep"); err != nil {
				t.Fatal(err)
			}

			_, err := s.Add(raw)
			if !errors.Is(err, ErrRejected) {
				t.Fatalf("Add(%q): got %v, want ErrRejected", raw, err)
			}
			if s.Len() != 1 {
				t.Errorf("Len: got %d, want 1", s.Len())
			}
			if p.saves != 1 {
				t.Errorf("rejected add should not write, got %d saves", p.saves)
			}
		})
	}
}

func TestAddAppendsInOrder(t *testing.T) {
	s := newTestStore(t, newFakePersistence())
	for _, text := range []string{"one", "two", "three"} {
		if _, err := s.Add(text); err != nil {
			t.Fatal(err)
		}
	}

	var got []string
	for _, task := range s.Tasks() {
		got = append(got, task.Text)
	}
	if diff := cmp.Diff([]string{"one", "two", "three"}, got); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestAddSkipsDuplicateIDs(t *testing.T) {
	ids := []string{"dup", "dup", "", "fresh"}
	gen := func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}
	s := Open(newFakePersistence(), DefaultKey, WithIDGenerator(gen))

	first, err := s.Add("first")
	if err != nil {
		t.Fatal(err)
	}
	second, err := s.Add("second")
	if err != nil {
		t.Fatal(err)
	}
	if first.ID != "dup" || second.ID != "fresh" {
		t.Errorf("ids: got %q and %q, want dup and fresh", first.ID, second.ID)
	}
}

func TestAddUsesUUIDByDefault(t *testing.T) {
	s := Open(newFakePersistence(), DefaultKey)
	a, _ := s.Add("a")
	b, _ := s.Add("b")
	if len(a.ID) != 36 {
		t.Errorf("expected a UUID, got %q", a.ID)
	}
	if a.ID == b.ID {
		t.Error("ids should be unique")
	}
}

func TestToggle(t *testing.T) {
	p := newFakePersistence()
	s := newTestStore(t, p)
	a, _ := s.Add("a")
	b, _ := s.Add("b")
	c, _ := s.Add("c")
	before := s.Tasks()

	if err := s.Toggle(b.ID); err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	want := []Task{a, {ID: b.ID, Text: "b", IsCompleted: true}, c}
	if diff := cmp.Diff(want, s.Tasks()); diff != "" {
		t.Errorf("after toggle (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, p.data["tasks"]); diff != "" {
		t.Errorf("persisted after toggle (-want +got):\n%s", diff)
	}

	if err := s.Toggle(b.ID); err != nil {
		t.Fatalf("second Toggle: %v", err)
	}
	if diff := cmp.Diff(before, s.Tasks()); diff != "" {
		t.Errorf("toggle twice should be identity (-want +got):\n%s", diff)
	}
	if p.saves != 5 {
		t.Errorf("saves: got %d, want 5", p.saves)
	}
}

func TestToggleUnknown(t *testing.T) {
	p := newFakePersistence()
	s := newTestStore(t, p)
	s.Add("a")
	before := s.Tasks()

	err := s.Toggle("missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Toggle: got %v, want ErrNotFound", err)
	}
	if diff := cmp.Diff(before, s.Tasks()); diff != "" {
		t.Errorf("list changed (-want +got):\n%s", diff)
	}
	if p.saves != 1 {
		t.Errorf("NotFound should not write, got %d saves", p.saves)
	}
}

func TestDelete(t *testing.T) {
	t.Run("unconfirmed is cancelled", func(t *testing.T) {
		p := newFakePersistence()
		s := newTestStore(t, p)
		a, _ := s.Add("a")

		if err := s.Delete(a.ID, false); !errors.Is(err, ErrCancelled) {
			t.Fatalf("Delete: got %v, want ErrCancelled", err)
		}
		if err := s.Delete("missing", false); !errors.Is(err, ErrCancelled) {
			t.Fatalf("Delete unknown unconfirmed: got %v, want ErrCancelled", err)
		}
		if s.Len() != 1 {
			t.Errorf("Len: got %d, want 1", s.Len())
		}
		if p.saves != 1 {
			t.Errorf("cancelled delete should not write, got %d saves", p.saves)
		}
	})

	t.Run("confirmed unknown is not found", func(t *testing.T) {
		p := newFakePersistence()
		s := newTestStore(t, p)
		s.Add("a")

		if err := s.Delete("missing", true); !errors.Is(err, ErrNotFound) {
			t.Fatalf("Delete: got %v, want ErrNotFound", err)
		}
		if s.Len() != 1 || p.saves != 1 {
			t.Errorf("unexpected change: len=%d saves=%d", s.Len(), p.saves)
		}
	})

	t.Run("confirmed removes in place", func(t *testing.T) {
		p := newFakePersistence()
		s := newTestStore(t, p)
		a, _ := s.Add("a")
		b, _ := s.Add("b")
		c, _ := s.Add("c")

		if err := s.Delete(b.ID, true); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		want := []Task{a, c}
		if diff := cmp.Diff(want, s.Tasks()); diff != "" {
			t.Errorf("after delete (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff(want, p.data["tasks"]); diff != "" {
			t.Errorf("persisted after delete (-want +got):\n%s", diff)
		}
		if _, ok := s.Get(b.ID); ok {
			t.Error("deleted task still present")
		}
	})
}

func TestFilteredView(t *testing.T) {
	s := newTestStore(t, newFakePersistence())
	a, _ := s.Add("a")
	b, _ := s.Add("b")
	c, _ := s.Add("c")
	d, _ := s.Add("d")
	s.Toggle(a.ID)
	s.Toggle(c.ID)
	a.IsCompleted = true
	c.IsCompleted = true

	tests := []struct {
		filter Filter
		want   []Task
	}{
		{FilterAll, []Task{a, b, c, d}},
		{FilterCompleted, []Task{a, c}},
		{FilterPending, []Task{b, d}},
	}

	for _, tt := range tests {
		t.Run(string(tt.filter), func(t *testing.T) {
			s.SetFilter(tt.filter)
			if s.Filter() != tt.filter {
				t.Errorf("Filter: got %q, want %q", s.Filter(), tt.filter)
			}
			if diff := cmp.Diff(tt.want, s.FilteredView()); diff != "" {
				t.Errorf("FilteredView (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSetFilterDoesNotPersist(t *testing.T) {
	p := newFakePersistence()
	s := newTestStore(t, p)
	s.SetFilter(FilterCompleted)
	s.SetFilter(FilterPending)
	if p.saves != 0 {
		t.Errorf("SetFilter wrote %d times", p.saves)
	}

	s.SetFilter(Filter("bogus"))
	if s.Filter() != FilterAll {
		t.Errorf("unknown filter: got %q, want all", s.Filter())
	}
}

func TestFilteredViewIsSnapshot(t *testing.T) {
	s := newTestStore(t, newFakePersistence())
	a, _ := s.Add("a")
	view := s.FilteredView()

	s.Toggle(a.ID)
	s.Add("b")
	if len(view) != 1 || view[0].IsCompleted {
		t.Errorf("snapshot observed later mutation: %+v", view)
	}

	view[0].Text = "changed"
	if got, _ := s.Get(a.ID); got.Text != "a" {
		t.Errorf("mutating the view changed the store: %+v", got)
	}
}

func TestScenarioBuyMilkWalkDog(t *testing.T) {
	s := Open(newFakePersistence(), DefaultKey)
	milk, err := s.Add("Buy milk")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Add("Walk dog"); err != nil {
		t.Fatal(err)
	}
	if err := s.Toggle(milk.ID); err != nil {
		t.Fatal(err)
	}

	texts := func(tasks []Task) []Task {
		out := make([]Task, len(tasks))
		for i, task := range tasks {
			out[i] = Task{Text: task.Text, IsCompleted: task.IsCompleted}
		}
		return out
	}

	s.SetFilter(FilterCompleted)
	if diff := cmp.Diff([]Task{{Text: "Buy milk", IsCompleted: true}}, texts(s.FilteredView())); diff != "" {
		t.Errorf("completed (-want +got):\n%s", diff)
	}
	s.SetFilter(FilterPending)
	if diff := cmp.Diff([]Task{{Text: "Walk dog"}}, texts(s.FilteredView())); diff != "" {
		t.Errorf("pending (-want +got):\n%s", diff)
	}
}

func TestFlushFailureKeepsMutation(t *testing.T) {
	p := newFakePersistence()
	p.saveErr = errors.New("disk full")
	s := newTestStore(t, p)

	task, err := s.Add("a")
	if !errors.Is(err, ErrFlush) {
		t.Fatalf("Add: got %v, want ErrFlush", err)
	}
	if task.Text != "a" || s.Len() != 1 {
		t.Errorf("task should be kept in memory: %+v len=%d", task, s.Len())
	}

	if err := s.Toggle(task.ID); !errors.Is(err, ErrFlush) {
		t.Errorf("Toggle: got %v, want ErrFlush", err)
	}
	if got, _ := s.Get(task.ID); !got.IsCompleted {
		t.Error("toggle should be kept in memory")
	}
}

func TestCounts(t *testing.T) {
	s := newTestStore(t, newFakePersistence())
	a, _ := s.Add("a")
	s.Add("b")
	s.Add("c")
	s.Toggle(a.ID)

	want := Counts{Total: 3, Completed: 1, Pending: 2}
	if got := s.Counts(); got != want {
		t.Errorf("Counts: got %+v, want %+v", got, want)
	}
}

func TestResolve(t *testing.T) {
	p := newFakePersistence()
	p.data["tasks"] = []Task{
		{ID: "abc123", Text: "one"},
		{ID: "abd456", Text: "two"},
		{ID: "xyz789", Text: "three"},
	}
	s := Open(p, DefaultKey)

	tests := []struct {
		name    string
		ref     string
		want    string
		wantErr error
	}{
		{"position", "2", "abd456", nil},
		{"position with spaces", " 3 ", "xyz789", nil},
		{"full id", "abc123", "abc123", nil},
		{"unique prefix", "abc", "abc123", nil},
		{"other prefix", "x", "xyz789", nil},
		{"ambiguous prefix", "ab", "", ErrAmbiguous},
		{"no match", "q", "", ErrNotFound},
		{"position out of range", "9", "", ErrNotFound},
		{"zero", "0", "", ErrNotFound},
		{"empty", "", "", ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Resolve(tt.ref)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Resolve(%q): got err %v, want %v", tt.ref, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve(%q): %v", tt.ref, err)
			}
			if got != tt.want {
				t.Errorf("Resolve(%q): got %q, want %q", tt.ref, got, tt.want)
			}
		})
	}
}

func TestPosition(t *testing.T) {
	s := newTestStore(t, newFakePersistence())
	s.Add("a")
	b, _ := s.Add("b")
	if got := s.Position(b.ID); got != 2 {
		t.Errorf("Position: got %d, want 2", got)
	}
	if got := s.Position("missing"); got != 0 {
		t.Errorf("Position(missing): got %d, want 0", got)
	}
}

func TestAddTextSurvivesReopen(t *testing.T) {
	p := newFakePersistence()
	s := newTestStore(t, p)
	if _, err := s.Add("caf\xe9"); err != nil {
		t.Fatalf("Add: %v", err)
	}

	data, err := Encode(p.data[DefaultKey])
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	decoded, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	p.data[DefaultKey] = decoded

	reopened := Open(p, DefaultKey)
	if diff := cmp.Diff(s.Tasks(), reopened.Tasks()); diff != "" {
		t.Errorf("reopened store (-want +got):\n%s", diff)
	}
}
