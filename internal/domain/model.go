package domain

type ActionKind string

const (
	ActionSourceFetch   ActionKind = "source-fetch"
	ActionBuildExecute  ActionKind = "build-execute"
	ActionDeployPublish ActionKind = "deploy-publish"
)

const (
	StageSource = "Source"
	StageBuild  = "Build"
	StageDeploy = "Deploy"
)

const (
	ArtifactSource = "SourceOutput"
	ArtifactSite   = "SiteOutput"
)

// Action is a single operation within a stage. Actions sharing a RunOrder
// value run concurrently; stages themselves run strictly in declaration order.
type Action struct {
	Name     string
	Kind     ActionKind
	RunOrder int
	Consumes []string
	Produces []string
}

type Stage struct {
	Name    string
	Actions []Action
}

// Definition is the full pipeline handed to the provisioning engine.
type Definition struct {
	Stages []Stage
}

// StaticSiteDefinition is the authoritative three-stage delivery pipeline:
// fetch the repository, build it, publish the result into the site bucket.
func StaticSiteDefinition() Definition {
	return Definition{Stages: []Stage{
		{Name: StageSource, Actions: []Action{{
			Name:     "FetchSource",
			Kind:     ActionSourceFetch,
			RunOrder: 1,
			Produces: []string{ArtifactSource},
		}}},
		{Name: StageBuild, Actions: []Action{{
			Name:     "BuildSite",
			Kind:     ActionBuildExecute,
			RunOrder: 1,
			Consumes: []string{ArtifactSource},
			Produces: []string{ArtifactSite},
		}}},
		{Name: StageDeploy, Actions: []Action{{
			Name:     "PublishSite",
			Kind:     ActionDeployPublish,
			RunOrder: 1,
			Consumes: []string{ArtifactSite},
		}}},
	}}
}

// Report is the outcome of validating a definition, persisted for editors
// and status bars.
type Report struct {
	Variant   string
	Stages    []string
	Issues    []string
	Generated int64
}

type ProbeResult struct {
	Status       int
	ContentType  string
	CacheControl string
	FinalURL     string
}
