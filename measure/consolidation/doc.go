// Package consolidation processes oedometer consolidation stages.
//
// An [Engine] takes a raw time/strain series of one load stage and derives
// the consolidation parameters by the two graphical constructions used in
// soil laboratories:
//
//   - square-root-of-time (Taylor): the straight initial portion of the
//     strain vs sqrt(t) curve is fitted, a line 15% flatter is drawn from
//     the same origin, and its crossing with the curve marks t90.
//   - logarithm-of-time (Casagrande): tangents to the primary and secondary
//     branches of the strain vs log10(t) curve meet at t100, the corrected
//     origin d0 comes from the t/4t construction, and the halfway strain
//     marks t50.
//
// Processing is a synchronous cascade: cut the raw series to a border
// window, resample it on an even sqrt(t) grid, detect the straight lines
// and derive the results. Any quantity whose construction fails is
// reported as an absent [Value], never as an error.
//
// Times are in minutes, strains are dimensionless with compression
// negative, and sample dimensions are in millimetres.
package consolidation
