package format

import "testing"

func TestSpecifierTable(t *testing.T) {
	tests := []struct {
		width   Width
		sign    Sign
		newline bool
		want    string
	}{
		{W8, Signed, false, "%hhd"},
		{W8, Signed, true, "%hhd\n"},
		{W8, Unsigned, false, "%hhu"},
		{W8, Unsigned, true, "%hhu\n"},
		{W16, Signed, false, "%hd"},
		{W16, Signed, true, "%hd\n"},
		{W16, Unsigned, false, "%hu"},
		{W16, Unsigned, true, "%hu\n"},
		{W32, Signed, false, "%d"},
		{W32, Signed, true, "%d\n"},
		{W32, Unsigned, false, "%u"},
		{W32, Unsigned, true, "%u\n"},
		{W64, Signed, false, "%ld"},
		{W64, Signed, true, "%ld\n"},
		{W64, Unsigned, false, "%lu"},
		{W64, Unsigned, true, "%lu\n"},
	}

	for _, tt := range tests {
		got := Specifier(tt.width, tt.sign, tt.newline)
		if got != tt.want {
			t.Fatalf("Specifier(%d, %d, %v)=%q want=%q",
				tt.width, tt.sign, tt.newline, got, tt.want)
		}
	}
}

func TestSpecifierCoversEveryCombination(t *testing.T) {
	seen := map[string]bool{}
	for _, w := range Widths {
		for _, s := range Signs {
			for _, newline := range []bool{false, true} {
				spec := Specifier(w, s, newline)
				if seen[spec] {
					t.Fatalf("duplicate specifier %q", spec)
				}
				seen[spec] = true
			}
		}
	}
	if len(seen) != 16 {
		t.Fatalf("expected 16 distinct specifiers, got=%d", len(seen))
	}
}

func TestSpecifierUnknownWidthPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for unknown width")
		}
	}()
	Specifier(Width(24), Signed, false)
}

func TestEntryName(t *testing.T) {
	tests := []struct {
		width   Width
		sign    Sign
		newline bool
		want    string
	}{
		{W8, Signed, false, "print_i8"},
		{W8, Unsigned, true, "print_u8ln"},
		{W16, Signed, true, "print_i16ln"},
		{W32, Unsigned, false, "print_u32"},
		{W64, Signed, true, "print_i64ln"},
		{W64, Unsigned, false, "print_u64"},
	}
	for _, tt := range tests {
		if got := EntryName(tt.width, tt.sign, tt.newline); got != tt.want {
			t.Fatalf("EntryName(%d, %d, %v)=%q want=%q",
				tt.width, tt.sign, tt.newline, got, tt.want)
		}
	}
}
