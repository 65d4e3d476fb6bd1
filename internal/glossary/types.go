package glossary

// Location is the only region the v3 glossary API serves.
const Location = "us-central1"

// Operation states reported by the Translation API.
const (
	StateRunning   = "RUNNING"
	StateSucceeded = "SUCCEEDED"
	StateFailed    = "FAILED"
)

// Request is the body of a glossary create call. Exactly one of LanguagePair
// and LanguageCodesSet is set; use the constructors so a mixed body cannot be
// built.
type Request struct {
	Name             string            `json:"name"`
	LanguagePair     *LanguagePair     `json:"languagePair,omitempty"`
	LanguageCodesSet *LanguageCodesSet `json:"languageCodesSet,omitempty"`
	InputConfig      InputConfig       `json:"inputConfig"`
}

type LanguagePair struct {
	SourceLanguageCode string `json:"sourceLanguageCode"`
	TargetLanguageCode string `json:"targetLanguageCode"`
}

type LanguageCodesSet struct {
	LanguageCodes []string `json:"languageCodes"`
}

type InputConfig struct {
	GCSSource GCSSource `json:"gcsSource"`
}

type GCSSource struct {
	InputURI string `json:"inputUri"`
}

// NewPairRequest builds a create request for a single source/target pair.
func NewPairRequest(name, sourceFileURI, sourceLang, targetLang string) Request {
	return Request{
		Name: name,
		LanguagePair: &LanguagePair{
			SourceLanguageCode: sourceLang,
			TargetLanguageCode: targetLang,
		},
		InputConfig: InputConfig{
			GCSSource: GCSSource{InputURI: sourceFileURI},
		},
	}
}

// NewCodesSetRequest builds a create request for an unordered set of language codes.
func NewCodesSetRequest(name, sourceFileURI string, codes []string) Request {
	return Request{
		Name: name,
		LanguageCodesSet: &LanguageCodesSet{
			LanguageCodes: codes,
		},
		InputConfig: InputConfig{
			GCSSource: GCSSource{InputURI: sourceFileURI},
		},
	}
}

// Operation is a snapshot of the long-running operation a create call starts.
// The remote service owns it; this process only observes.
type Operation struct {
	Name     string             `json:"name"`
	Metadata *OperationMetadata `json:"metadata,omitempty"`
	Done     bool               `json:"done,omitempty"`
	Error    *OperationError    `json:"error,omitempty"`
}

// OperationMetadata is absent until the remote system populates it.
type OperationMetadata struct {
	Type  string `json:"@type,omitempty"`
	Name  string `json:"name,omitempty"`
	State string `json:"state,omitempty"`
}

type OperationError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status,omitempty"`
}

// ErrorPayload is the body the API returns on failure responses.
type ErrorPayload struct {
	Error OperationError `json:"error"`
}
