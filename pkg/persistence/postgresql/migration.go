package postgresql

func migrations() map[int]string {
	return map[int]string{
		1: `
			CREATE TABLE workflows (
				id VARCHAR(255) PRIMARY KEY,
				name VARCHAR(255) NOT NULL,
				description TEXT NOT NULL DEFAULT '',
				trigger JSONB,
				steps JSONB NOT NULL,
				exit_conditions JSONB,
				created_at TIMESTAMP WITH TIME ZONE NOT NULL
			);

			CREATE INDEX idx_workflows_created_at ON workflows(created_at);
		`,
		2: `
			CREATE TABLE executions (
				id VARCHAR(255) PRIMARY KEY,
				workflow_id VARCHAR(255) NOT NULL,
				customer_id VARCHAR(255) NOT NULL,
				campaign_id VARCHAR(255),
				current_step_id VARCHAR(255),
				status VARCHAR(50) NOT NULL,
				completed_steps JSONB NOT NULL DEFAULT '[]',
				results JSONB NOT NULL DEFAULT '{}',
				error TEXT,
				started_at TIMESTAMP WITH TIME ZONE NOT NULL,
				next_step_at TIMESTAMP WITH TIME ZONE,
				completed_at TIMESTAMP WITH TIME ZONE
			);

			CREATE INDEX idx_executions_workflow_id ON executions(workflow_id);
			CREATE INDEX idx_executions_customer_id ON executions(customer_id);
			CREATE INDEX idx_executions_status ON executions(status);
			CREATE INDEX idx_executions_next_step_at ON executions(next_step_at)
				WHERE status = 'waiting';
		`,
	}
}
