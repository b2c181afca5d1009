package build

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/weigo/NWDI-Cobertura-Plugin/internal/core/component"
)

func TestFindJUnitArchive(t *testing.T) {
	root := filepath.ToSlash(t.TempDir())
	touch(t, root+"/empty/readme.txt")
	touch(t, root+"/nested/lib/java/junit-4.12.jar")
	touch(t, root+"/other/junit.jar")
	touch(t, root+"/upper/JUnit-4.12.jar")
	touch(t, root+"/suffix/junit-4.12.jar.sha1")
	touch(t, root+"/plain.jar")
	touch(t, root+"/store/junit-4.12.jar")
	symlink(t, root+"/store/junit-4.12.jar", root+"/linked/lib/junit-4.12.jar")
	symlink(t, root+"/store/gone.jar", root+"/dangling/junit-4.12.jar")

	tests := []struct {
		name      string
		classpath []string
		want      string
		found     bool
	}{
		{"empty class path", nil, "", false},
		{"recursive match", []string{root + "/nested"}, root + "/nested/lib/java/junit-4.12.jar", true},
		{"bare name", []string{root + "/other"}, root + "/other/junit.jar", true},
		{"case sensitive", []string{root + "/upper"}, "", false},
		{"suffix anchored", []string{root + "/suffix"}, "", false},
		{"missing entries skipped", []string{root + "/missing", root + "/other"}, root + "/other/junit.jar", true},
		{"files skipped", []string{root + "/plain.jar"}, "", false},
		{"symlinked archive", []string{root + "/linked"}, root + "/linked/lib/junit-4.12.jar", true},
		{"dangling symlink skipped", []string{root + "/dangling"}, "", false},
		{"first match wins", []string{root + "/empty", root + "/other", root + "/nested"}, root + "/other/junit.jar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := FindJUnitArchive(tt.classpath)
			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEligibilityFilter_Accept(t *testing.T) {
	root := filepath.ToSlash(t.TempDir())
	touch(t, root+"/junit/junit-4.12.jar")
	mkdir(t, root+"/nojunit")
	dc := component.New("example.org", "lib/dc1", nil, nil)

	tests := []struct {
		name      string
		filter    *EligibilityFilter
		sources   []string
		classpath []string
		want      bool
	}{
		{"no sources", DefaultFilter(), nil, []string{root + "/junit"}, false},
		{"no junit", DefaultFilter(), []string{"/src"}, []string{root + "/nojunit"}, false},
		{"sources and junit", DefaultFilter(), []string{"/src"}, []string{root + "/junit"}, true},
		{"junit not required", &EligibilityFilter{}, []string{"/src"}, nil, true},
		{"sources required without junit rule", &EligibilityFilter{}, nil, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Accept(dc, tt.sources, tt.classpath))
		})
	}
}
