// Package driven lists what the core needs from the outside world.
//
// SearchClient, NativeBridge, Clipboard and ConfigStore must be wired for
// Sift to start. LLMService, PromptStore, HistoryStore, TextExtractor and
// ImageInspector may be nil: the feature they back is then switched off, for
// example summaries without an LLM or PDF previews without pdftotext.
//
// Only the domain package may be imported from here.
package driven
