package mcpserver

// Tool descriptions with interpretation guidance for LLMs.

const confidenceGuide = `- The interval is a range for the population mean, not for individual values
- Wider intervals mean less certainty: small samples and high spread widen it
- Raising the confidence level (0.90 -> 0.95 -> 0.99) widens the interval
- margin_of_error is half the interval width (t_score * std_err)
- If two samples' intervals do not overlap, their means likely differ`

func describeComputeStatistics() string {
	return `Computes mean, sample variance, standard deviation and a Student's t confidence interval for the mean of a list of numbers.

USE WHEN:
- You already have the numbers in the conversation
- Estimating a typical value with an honest uncertainty range
- Checking whether a quick sample is large enough to be useful

INTERPRETING RESULTS:
` + confidenceGuide + `
- An empty list returns no result and the message "No data to analyze."
- A single value is an error: variance needs at least two observations

METRICS RETURNED:
- n, mean, variance (n-1 denominator), std_dev, std_err
- t_score: two-sided critical value with n-1 degrees of freedom
- margin_of_error and confidence_interval {lower, upper}`
}

func describeDescribeFile() string {
	return `Loads one numeric column from a CSV file (or one value per line from a text file) and computes its summary statistics and confidence interval.

USE WHEN:
- Summarizing a dataset on disk without reading it into the conversation
- Comparing a column against an expected value or threshold
- Getting a quick sanity check of exported measurements

INTERPRETING RESULTS:
` + confidenceGuide + `
- Missing cells (empty, NA, NaN, null) are skipped and do not count toward n
- When no column is given, the first fully numeric column is used

METRICS RETURNED:
- source, column, and the same statistics as compute_statistics
- An empty column returns the message "No data to analyze."`
}

func describeListColumns() string {
	return `Lists the columns of a CSV or line-delimited file with value counts and whether each column is numeric.

USE WHEN:
- Choosing which column to pass to describe_file
- Checking how many values are missing before analysis

INTERPRETING RESULTS:
- numeric is true only when every present value parses as a number
- missing counts empty or NA-like cells, which analysis skips
- Line-delimited files expose a single column named "value"

METRICS RETURNED:
- Per column: name, values, missing, numeric`
}

func describeDescribeBatch() string {
	return `Computes summary statistics for the same column across many files concurrently.

USE WHEN:
- Comparing the same measurement across runs, days or environments
- Summarizing a directory of exported result files

INTERPRETING RESULTS:
` + confidenceGuide + `
- Files that fail (missing, unparsable, fewer than two values) carry an error and do not stop the batch

METRICS RETURNED:
- files: per-file source, column, result or error
- succeeded and failed counts`
}
