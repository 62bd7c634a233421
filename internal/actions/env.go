package actions

import "os"

// Environment is the workflow context exported by the runner.
type Environment struct {
	// Actions is true when running inside a workflow.
	Actions    bool
	Repository string
	Ref        string
	APIURL     string
	OutputPath string
	Token      string
}

// FromEnv reads the runner's environment variables.
func FromEnv() Environment {
	return Environment{
		Actions:    os.Getenv("GITHUB_ACTIONS") == "true",
		Repository: os.Getenv("GITHUB_REPOSITORY"),
		Ref:        os.Getenv("GITHUB_REF"),
		APIURL:     os.Getenv("GITHUB_API_URL"),
		OutputPath: os.Getenv("GITHUB_OUTPUT"),
		Token:      os.Getenv("GITHUB_TOKEN"),
	}
}
