package lerobot

// This file builds the python argument vectors for the two toolchain
// operations. Building is separated from execution (tool.go) so argument
// construction can be tested without a python interpreter.

// convertModule upgrades a dataset from schema v2.1 to v3.0 in place.
const convertModule = "lerobot.datasets.v30.convert_dataset_v21_to_v30"

// mergeModule consolidates several datasets into one output dataset.
const mergeModule = "lerobot.datasets.dataset_tools"

// BuildConvertArgs returns the python argument vector (excluding the
// interpreter) for an in-place schema conversion. Publishing to the hub is
// always disabled; this pipeline only prepares local datasets.
func BuildConvertArgs(repoID, root string) []string {
	return []string{
		"-m", convertModule,
		"--repo-id=" + repoID,
		"--root=" + root,
		"--push-to-hub=0",
	}
}

// BuildMergeArgs returns the python argument vector for merging repoIDs into
// outputRepoID at outputDir. One --repo-id flag per input, in input order;
// the toolchain owns all consistency reconciliation across the inputs.
func BuildMergeArgs(repoIDs []string, outputRepoID, outputDir string) []string {
	args := []string{"-m", mergeModule, "merge"}
	for _, id := range repoIDs {
		args = append(args, "--repo-id="+id)
	}
	args = append(args,
		"--output-repo-id="+outputRepoID,
		"--output-dir="+outputDir,
	)
	return args
}
