// Package file keeps Sift's settings on disk under ~/.sift: config.toml
// through ConfigStore, the LLM prompts through PromptStore, and a Watcher
// that reloads both when they are edited by hand.
package file
