// Package services implements the driving port interfaces.
// Services contain the core logic of Sift and orchestrate
// calls to driven ports (adapters):
//
//   - ResultStore: debounced search state with stale response rejection
//   - SelectionController: wrapping focus over the current results
//   - ActionDispatcher: palette actions per file type
//   - AssistService: LLM suggestions, summaries and highlighting
//   - IntegrationService: OAuth credentials per integration
//
// Services are pure Go with no CGO.
package services
