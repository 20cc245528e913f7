package raw

import "testing"

func TestGet(t *testing.T) {
	t.Setenv("LOG_LEVEL", "  debug  ")
	c := New().Prefix("LOG_")
	if got := c.Get("LEVEL", "info"); got != "debug" {
		t.Fatalf("Get = %q", got)
	}
	if got := c.Get("MISSING", "info"); got != "info" {
		t.Fatalf("Get default = %q", got)
	}
}

func TestGetBool(t *testing.T) {
	cases := []struct {
		val  string
		want bool
	}{
		{"1", true},
		{"true", true},
		{"yes", true},
		{"TRUE", true},
		{"0", false},
		{"no", false},
		{"garbage", false},
	}
	for _, cse := range cases {
		t.Setenv("FLAG", cse.val)
		if got := New().GetBool("FLAG", false); got != cse.want {
			t.Fatalf("GetBool(%q) = %v, want %v", cse.val, got, cse.want)
		}
	}
	if !New().GetBool("UNSET_FLAG", true) {
		t.Fatalf("GetBool should fall back to default when unset")
	}
}

func TestGetInt(t *testing.T) {
	t.Setenv("N", "123")
	if got := New().GetInt("N", 5); got != 123 {
		t.Fatalf("GetInt = %d", got)
	}
	t.Setenv("N", "12x")
	if got := New().GetInt("N", 5); got != 5 {
		t.Fatalf("GetInt non-numeric = %d", got)
	}
	if got := New().GetInt("UNSET_N", 5); got != 5 {
		t.Fatalf("GetInt unset = %d", got)
	}
}
