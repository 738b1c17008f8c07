package types

import "testing"

func declare(t *testing.T, e *Env, name, parent string) *ClassRecord {
	t.Helper()
	rec, err := e.DeclareType(name)
	if err != nil {
		t.Fatalf("DeclareType(%s): %v", name, err)
	}
	rec.Parent = parent
	return rec
}

func TestSubtype_PrimitivesAreDisjoint(t *testing.T) {
	e := NewEnv()
	if e.Subtype(Number, Object) {
		t.Error("Number should not be a subtype of Object")
	}
	if e.Subtype(Boolean, String) {
		t.Error("Boolean should not be a subtype of String")
	}
	if !e.Subtype(Number, Number) {
		t.Error("Number should be a subtype of itself")
	}
}

func TestSubtype_UserHierarchy(t *testing.T) {
	e := NewEnv()
	declare(t, e, "Animal", "")
	declare(t, e, "Dog", "Animal")

	if !e.Subtype("Dog", "Animal") {
		t.Error("Dog should be a subtype of Animal")
	}
	if !e.Subtype("Dog", Object) {
		t.Error("Dog should be a subtype of Object")
	}
	if e.Subtype("Animal", "Dog") {
		t.Error("Animal should not be a subtype of Dog")
	}
}

func TestLCA_CommonAncestor(t *testing.T) {
	e := NewEnv()
	declare(t, e, "Animal", "")
	declare(t, e, "Dog", "Animal")
	declare(t, e, "Cat", "Animal")

	if got := e.LCA("Dog", "Cat"); got != "Animal" {
		t.Errorf("LCA(Dog,Cat) = %s, want Animal", got)
	}
	if got := e.LCA("Dog", "Dog"); got != "Dog" {
		t.Errorf("LCA(Dog,Dog) = %s, want Dog", got)
	}
}

func TestLCA_UnrelatedFallsBackToObject(t *testing.T) {
	e := NewEnv()
	declare(t, e, "A", "")
	declare(t, e, "B", "")
	if got := e.LCA("A", "B"); got != Object {
		t.Errorf("LCA(A,B) = %s, want Object", got)
	}
}

func TestHasCycle(t *testing.T) {
	e := NewEnv()
	declare(t, e, "A", "B")
	declare(t, e, "B", "A")

	if !e.HasCycle("A") {
		t.Error("expected cycle to be detected between A and B")
	}
}

func TestHasCycle_NoCycle(t *testing.T) {
	e := NewEnv()
	declare(t, e, "A", "")
	declare(t, e, "B", "A")
	if e.HasCycle("B") {
		t.Error("did not expect a cycle")
	}
}

func TestMethodOf_InheritedAndOverridden(t *testing.T) {
	e := NewEnv()
	parent := declare(t, e, "A", "")
	parent.Methods["m"] = &MethodInfo{Name: "m", ReturnType: Number, OwnerType: "A", Slot: 0}
	child := declare(t, e, "B", "A")
	child.Methods["m"] = &MethodInfo{Name: "m", ReturnType: Number, OwnerType: "B", Slot: 0}

	m, ok := e.MethodOf("B", "m")
	if !ok {
		t.Fatal("expected to find method m on B")
	}
	if m.OwnerType != "B" {
		t.Errorf("expected B's override to win, got owner %s", m.OwnerType)
	}

	child2 := declare(t, e, "C", "A")
	_ = child2
	m2, ok := e.MethodOf("C", "m")
	if !ok || m2.OwnerType != "A" {
		t.Fatalf("expected C to inherit A's method, got %+v ok=%v", m2, ok)
	}
}

func TestAttributeOf_Inherited(t *testing.T) {
	e := NewEnv()
	parent := declare(t, e, "A", "")
	parent.Attributes["x"] = &AttributeInfo{Name: "x", Type: Number, Index: 0}
	declare(t, e, "B", "A")

	attr, ok := e.AttributeOf("B", "x")
	if !ok {
		t.Fatal("expected B to inherit attribute x from A")
	}
	if attr.Type != Number {
		t.Errorf("got type %s, want Number", attr.Type)
	}
}

func TestDeclareType_Duplicate(t *testing.T) {
	e := NewEnv()
	declare(t, e, "A", "")
	if _, err := e.DeclareType("A"); err == nil {
		t.Error("expected error declaring A twice")
	}
}

func TestAncestorAttributeCount(t *testing.T) {
	e := NewEnv()
	parent := declare(t, e, "A", "")
	parent.Attributes["x"] = &AttributeInfo{Name: "x", Type: Number, Index: 0}
	parent.AttributeOrder = []string{"x"}
	declare(t, e, "B", "A")

	if got := e.AncestorAttributeCount("A"); got != 1 {
		t.Errorf("AncestorAttributeCount(A) = %d, want 1", got)
	}
	if got := e.AncestorAttributeCount(""); got != 0 {
		t.Errorf("AncestorAttributeCount(\"\") = %d, want 0", got)
	}
}

func TestNextMethodSlot(t *testing.T) {
	e := NewEnv()
	parent := declare(t, e, "A", "")
	parent.Methods["m"] = &MethodInfo{Name: "m", OwnerType: "A", Slot: 0}
	parent.MethodOrder = []string{"m"}
	declare(t, e, "B", "A")

	if got := e.NextMethodSlot("A"); got != 1 {
		t.Errorf("NextMethodSlot(A) = %d, want 1", got)
	}
	if got := e.NextMethodSlot(""); got != 0 {
		t.Errorf("NextMethodSlot(\"\") = %d, want 0", got)
	}
}

func TestFlattenedAttributes_ParentFirst(t *testing.T) {
	e := NewEnv()
	parent := declare(t, e, "A", "")
	parent.Attributes["x"] = &AttributeInfo{Name: "x", Type: Number, Index: 0}
	parent.AttributeOrder = []string{"x"}
	child := declare(t, e, "B", "A")
	child.Attributes["y"] = &AttributeInfo{Name: "y", Type: String, Index: 1}
	child.AttributeOrder = []string{"y"}

	got := e.FlattenedAttributes("B")
	if len(got) != 2 || got[0].Name != "x" || got[1].Name != "y" {
		t.Fatalf("FlattenedAttributes(B) = %+v, want [x y]", got)
	}
}

func TestVtableSlots_OverrideReplacesAncestorSlot(t *testing.T) {
	e := NewEnv()
	parent := declare(t, e, "A", "")
	parent.Methods["m"] = &MethodInfo{Name: "m", OwnerType: "A", Slot: 0}
	parent.MethodOrder = []string{"m"}
	child := declare(t, e, "B", "A")
	child.Methods["m"] = &MethodInfo{Name: "m", OwnerType: "B", Slot: 0}
	child.MethodOrder = []string{"m"}

	got := e.VtableSlots("B")
	if len(got) != 1 || got[0].OwnerType != "B" {
		t.Fatalf("VtableSlots(B) = %+v, want single slot owned by B", got)
	}
}

func TestDeclareType_ReservedNames(t *testing.T) {
	e := NewEnv()
	for _, name := range []string{Object, Number, Boolean, String} {
		if _, err := e.DeclareType(name); err == nil {
			t.Errorf("expected error declaring reserved name %s", name)
		}
	}
}
