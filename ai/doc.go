// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package ai provides the embedding abstraction used by wellwise.
//
// Symptom names, FAQ questions and user queries are mapped into one vector
// space by a sentence-embedding model. The index builder embeds the corpus
// once; the retrieval oracles embed queries at runtime.
//
// # Implementation Packages
//
//   - ai/openai: langchaingo client for OpenAI-compatible APIs (Ollama, vLLM, OpenAI)
//   - ai/mock: deterministic test doubles
//
// Public production constructors return interfaces. Mock constructors
// return concrete types so tests can inject behavior and read CallCount.
//
// # Usage Example
//
//	provider, err := openai.NewProvider(ai.NewConfig(ai.WithEmbeddingModel("all-minilm")))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	vector, err := provider.Embedder().EmbedText(ctx, "sore throat")
package ai
