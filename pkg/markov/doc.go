/*
Package markov implements a character-level n-gram Markov text generator.

A Model learns, from a training corpus, how often each character follows
every fixed-length window of characters. Training finishes by turning the
raw counts into cumulative probability distributions, and generation extends
a seed string one character at a time by sampling from the distribution of
its trailing window.

Characters are runes: windows, seeds and lengths are all measured in runes,
so UTF-8 corpora are handled character by character rather than byte by byte.
Train rejects a corpus that is not valid UTF-8 with ErrInvalidUTF8. Seeds are
never re-encoded: Generate returns the seed's bytes as given and appends
generated characters after them, and a trailing window holding an invalid
byte is simply an unknown context.

A trained Model is read-only. Several goroutines may generate from it at the
same time as long as each uses its own Source through GenerateWith.
*/
package markov
