package sqlguard

import (
	libinjection "github.com/corazawaf/libinjection-go"
)

// InjectionCheckResult describes a parameter value that matched a SQL
// injection pattern.
type InjectionCheckResult struct {
	IsSQLi      bool
	Fingerprint string
	ParamName   string
	ParamValue  any
}

// CheckParameterForInjection runs libinjection against a parameter value.
// Only string values are checked; other types cannot carry injection
// patterns and return nil.
func CheckParameterForInjection(paramName string, value any) *InjectionCheckResult {
	strValue, ok := value.(string)
	if !ok {
		return nil
	}

	isSQLi, fingerprint := libinjection.IsSQLi(strValue)
	if isSQLi {
		return &InjectionCheckResult{
			IsSQLi:      true,
			Fingerprint: string(fingerprint),
			ParamName:   paramName,
			ParamValue:  value,
		}
	}

	return nil
}

// CheckScopeParams validates tenant scoping identifiers before they are bound
// to a query. Returns results for every value that failed, empty when clean.
func CheckScopeParams(params map[string]any) []*InjectionCheckResult {
	var results []*InjectionCheckResult
	for name, value := range params {
		if result := CheckParameterForInjection(name, value); result != nil {
			results = append(results, result)
		}
	}
	return results
}
