// Package table keeps the sort and pagination state of one logical table.
//
// Sort keys resolve through a Fields accessor map built once per table, so
// nested fields such as "sustainability.powerEfficiency" are looked up
// without parsing the key. Missing values always sort last.
package table
