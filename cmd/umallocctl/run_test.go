package main

import (
	"testing"
)

const reuseScript = `alloc a 10
alloc b 20
free a
alloc c 10
check
dump
`

func TestRunCommand(t *testing.T) {
	tests := []struct {
		name        string
		script      string
		source      string
		limit       int
		minGrow     uint32
		wantJSON    bool
		wantErr     bool
		wantContain []string
	}{
		{
			name:    "reuse after free",
			script:  reuseScript,
			minGrow: 64,
			wantContain: []string{
				"1: alloc a 10 -> ref 62 (3 units)",
				"2: alloc b 20 -> ref 58 (4 units)",
				"3: free a (ref 62)",
				"4: alloc c 10 -> ref 62 (3 units)",
				"5: check ok",
				"[0, 57) 57 units",
				"Span: 64 units, free: 57 units in 1 blocks, largest 57",
			},
		},
		{
			name:    "mmap source",
			script:  reuseScript,
			source:  sourceMmap,
			limit:   1 << 20,
			minGrow: 64,
			wantContain: []string{
				"4: alloc c 10 -> ref 62 (3 units)",
				"5: check ok",
			},
		},
		{
			name:   "default growth uses digit grouping",
			script: "alloc a 10\ndump\n",
			wantContain: []string{
				"1: alloc a 10 -> ref 4,094 (3 units)",
				"[0, 4,093) 4,093 units",
			},
		},
		{
			name:    "out of memory is not fatal",
			script:  "alloc big 1000\nalloc small 8\ncheck\n",
			limit:   512,
			minGrow: 64,
			wantContain: []string{
				"1: alloc big 1,000 -> alloc: out of memory",
				"2: alloc small 8 -> ref 63 (2 units)",
				"3: check ok",
			},
		},
		{
			name:    "comments and zero-byte request",
			script:  "# header\n\n   # indented\nalloc a 0\n",
			minGrow: 64,
			wantContain: []string{
				"4: alloc a 0 -> ref 64 (1 units)",
			},
		},
		{
			name:     "json output",
			script:   reuseScript,
			minGrow:  64,
			wantJSON: true,
			wantContain: []string{
				`"op": "alloc"`,
				`"ref": 62`,
				`"free_units": 57`,
			},
		},
		{
			name:    "unknown name",
			script:  "alloc a 8\nfree b\n",
			wantErr: true,
		},
		{
			name:    "unknown command",
			script:  "realloc a 8\n",
			wantErr: true,
		},
		{
			name:    "name already allocated",
			script:  "alloc a 8\nalloc a 16\n",
			wantErr: true,
		},
		{
			name:    "bad size",
			script:  "alloc a ten\n",
			wantErr: true,
		},
		{
			name:    "negative size",
			script:  "alloc a -1\n",
			wantErr: true,
		},
		{
			name:    "wrong arity",
			script:  "free\n",
			wantErr: true,
		},
		{
			name:    "unknown source",
			script:  reuseScript,
			source:  "disk",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags()
			jsonOut = tt.wantJSON
			if tt.source != "" {
				sourceKind = tt.source
			}
			if tt.limit != 0 {
				limit = tt.limit
			}
			if tt.minGrow != 0 {
				minGrow = tt.minGrow
			}

			path := writeScript(t, tt.script)
			output, err := captureOutput(t, func() error {
				return runRun([]string{path})
			})

			if (err != nil) != tt.wantErr {
				t.Errorf("runRun() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				return
			}
			if tt.wantJSON {
				assertJSON(t, output)
			}
			assertContains(t, output, tt.wantContain)
		})
	}
}

func TestRunCommand_MissingScript(t *testing.T) {
	resetFlags()
	_, err := captureOutput(t, func() error {
		return runRun([]string{"does-not-exist.txt"})
	})
	if err == nil {
		t.Fatal("expected error for missing script")
	}
}

func TestRunCommand_Quiet(t *testing.T) {
	resetFlags()
	quiet = true
	path := writeScript(t, reuseScript)
	output, err := captureOutput(t, func() error {
		return runRun([]string{path})
	})
	if err != nil {
		t.Fatalf("runRun() error = %v", err)
	}
	if output != "" {
		t.Errorf("quiet mode printed output: %q", output)
	}
}
