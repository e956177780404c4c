// Package index builds the embedding cache used by the retrieval oracles.
//
// An Indexer embeds the symptom and FAQ corpora in batches across a worker
// pool, normalizes every vector to unit length and stores the records. Each
// corpus carries a stamp naming the embedding model and a digest of its
// content. A corpus whose stamp still matches is left alone; otherwise
// vectors are rebuilt, reusing stored ones when the model is unchanged, and
// records no longer in the corpus are removed.
package index
