package programs

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/tidwall/gjson"
)

var ErrUnknownMajor = errors.New("unknown major")

// Program is one major from the program data file. MajorCode keeps the file's
// spelling ("B.COSC"); Department is the part after its first dot.
type Program struct {
	Code         string
	Name         string
	MajorCode    string
	Department   string
	Requirements string
}

// Load reads a program data file shaped like
// {"programs": {"COSC": {"name": ..., "types": {"major": {"code": "B.COSC", "requirements": ...}}}}}.
func Load(path string) ([]Program, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read program data: %w", err)
	}
	return Parse(content)
}

// Parse extracts every program carrying a major. Programs are returned sorted
// by code.
func Parse(content []byte) ([]Program, error) {
	if !gjson.ValidBytes(content) {
		return nil, errors.New("program data is not valid JSON")
	}
	root := gjson.GetBytes(content, "programs")
	if !root.IsObject() {
		return nil, errors.New("program data has no programs object")
	}

	var programs []Program
	root.ForEach(func(key, value gjson.Result) bool {
		major := value.Get("types.major")
		if !major.Exists() {
			return true
		}

		majorCode := major.Get("code").String()
		programs = append(programs, Program{
			Code:         key.String(),
			Name:         value.Get("name").String(),
			MajorCode:    majorCode,
			Department:   department(majorCode, key.String()),
			Requirements: strings.TrimSpace(major.Get("requirements").String()),
		})
		return true
	})

	sort.Slice(programs, func(i, j int) bool {
		return programs[i].Code < programs[j].Code
	})
	return programs, nil
}

func department(majorCode, fallback string) string {
	if _, dept, found := strings.Cut(majorCode, "."); found && dept != "" {
		return strings.ToUpper(dept)
	}
	return strings.ToUpper(fallback)
}

func Find(programs []Program, code string) (Program, error) {
	for _, program := range programs {
		if strings.EqualFold(program.Code, code) {
			return program, nil
		}
	}
	return Program{}, fmt.Errorf("%v: %w", code, ErrUnknownMajor)
}
