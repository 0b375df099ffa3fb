package types

// ProjectType is the project area the assessment is made for. It is carried
// through to the stored record and the export but does not affect the score.
type ProjectType string

const (
	ProjectStrategy              ProjectType = "strategy"
	ProjectDigitalTransformation ProjectType = "digital_transformation"
	ProjectProcessOptimization   ProjectType = "process_optimization"
	ProjectSoftwareDevelopment   ProjectType = "software_development"
	ProjectDataAnalytics         ProjectType = "data_analytics"
	ProjectAutomotive            ProjectType = "automotive"
	ProjectInternalOperations    ProjectType = "internal_operations"
)

func KnownProjectTypes() []ProjectType {
	return []ProjectType{
		ProjectStrategy,
		ProjectDigitalTransformation,
		ProjectProcessOptimization,
		ProjectSoftwareDevelopment,
		ProjectDataAnalytics,
		ProjectAutomotive,
		ProjectInternalOperations,
	}
}

func (p ProjectType) String() string {
	return string(p)
}
