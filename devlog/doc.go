// Package devlog reads and writes oedometer device logs.
//
// The CSV format is the semicolon separated log of the laboratory
// controller: a fixed three line header followed by one row per sample.
//
//	SampleHeight;SampleDiameter;Press;Trajectory
//	20;71.4;200;consolidation
//	ID;DateTime;Press;Deformation;StabEnd;Consolidation
//	1;2024-01-01 00:00:00.000;200;0.00;0;1
//
// Deformation is the settlement since the first sample in millimetres with
// two decimals, so strain is only resolved to 0.005 mm over the sample
// height. StabEnd marks the last sample of the stage.
//
// Spreadsheets hold the same data as named time and strain columns.
package devlog
