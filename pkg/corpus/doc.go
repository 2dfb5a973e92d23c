/*
Package corpus supplies training text to the markov package and keeps a
record of what was generated from it.

Corpora are stored by name in a SQLite database alongside a history of
generation runs. Only raw text and run parameters are persisted; trained
models are rebuilt from their corpus on every run.
*/
package corpus
