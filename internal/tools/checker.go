package tools

import (
	"os/exec"
)

// ToolRequirement represents an external utility a probe shells out to
type ToolRequirement struct {
	Name    string // Display name
	Binary  string // Executable name or absolute path
	Purpose string // One-line description
}

// CheckResult represents the result of checking a single tool
type CheckResult struct {
	Tool  ToolRequirement
	Found bool
	Path  string
}

// CheckTools checks all tools in the provided list
func CheckTools(tools []ToolRequirement) []CheckResult {
	results := make([]CheckResult, len(tools))
	for i, tool := range tools {
		results[i] = CheckTool(tool)
	}
	return results
}

// CheckTool checks if a single tool is available
func CheckTool(tool ToolRequirement) CheckResult {
	result := CheckResult{
		Tool:  tool,
		Found: false,
	}

	path, err := exec.LookPath(tool.Binary)
	if err != nil {
		return result
	}

	result.Found = true
	result.Path = path

	return result
}
