package dataset

var NumericValue = numericValue
