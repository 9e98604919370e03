// Package seglap implements the second step of linear-assignment-problem
// (LAP) tracking: linking already-formed track segments into full tracks.
//
// Given a track graph whose connected components are simple branch-free
// paths, the tracker builds a sparse cost matrix over three event kinds:
//
//   - gap closing: a segment tail linked to another segment head,
//     possibly skipping frames;
//   - splitting: a segment head linked to the middle of another segment;
//   - merging: a segment tail linked to the middle of another segment.
//
// Every segment may instead terminate or initiate at a shared alternative
// cost derived from the percentile of all candidate costs. A sparse
// minimum-cost bipartite matching over the assembled matrix decides the
// globally optimal set of links, which are then written back into the
// graph with the realized cost as edge weight.
package seglap
